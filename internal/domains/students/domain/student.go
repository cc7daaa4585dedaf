package domain

import (
	"strings"
	"time"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

const (
	MinGPA = 0.0
	MaxGPA = 4.0
)

// Student is an enrolled (or formerly enrolled) person.
type Student struct {
	ID             int64
	FirstName      string `validate:"notblank,max=50"`
	LastName       string `validate:"notblank,max=50"`
	Email          string `validate:"required,email,max=100"`
	DateOfBirth    time.Time
	Address        string `validate:"max=200"`
	IsActive       bool
	GPA            float64 `validate:"gte=0,lte=4,decimals=2"`
	EnrollmentDate time.Time
	UpdatedAt      time.Time
}

// NewStudent builds an active student and validates it.
func NewStudent(firstName, lastName, email string) (*Student, error) {
	s := &Student{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		IsActive:  true,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Student) Validate() error {
	return validation.Struct(s)
}

// Deactivate marks the student inactive; the record is kept.
func (s *Student) Deactivate() {
	s.IsActive = false
}

// GPAWithin reports whether the GPA falls in [min, max].
func (s Student) GPAWithin(min, max float64) bool {
	return s.GPA >= min && s.GPA <= max
}
