package mapper

import (
	"time"

	"github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
)

type Student struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Address        string     `json:"address,omitempty"`
	IsActive       bool       `json:"isActive"`
	GPA            float64    `json:"gpa"`
	EnrollmentDate time.Time  `json:"enrollmentDate"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CreateStudent struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     string     `json:"address"`
	GPA         float64    `json:"gpa"`
}

type PatchStudent struct {
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	Email       *string    `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     *string    `json:"address"`
	GPA         *float64   `json:"gpa"`
}

func ToAddInput(payload CreateStudent) types.AddStudentInput {
	input := types.AddStudentInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Address:   payload.Address,
		GPA:       payload.GPA,
	}
	if payload.DateOfBirth != nil {
		input.DateOfBirth = *payload.DateOfBirth
	}
	return input
}

func ToMutationInput(payload PatchStudent) types.StudentMutationInput {
	return types.StudentMutationInput{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		DateOfBirth: payload.DateOfBirth,
		Address:     payload.Address,
		GPA:         payload.GPA,
	}
}

func FromDomain(s *domain.Student) Student {
	out := Student{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Address:        s.Address,
		IsActive:       s.IsActive,
		GPA:            s.GPA,
		EnrollmentDate: s.EnrollmentDate,
		UpdatedAt:      s.UpdatedAt,
	}
	if !s.DateOfBirth.IsZero() {
		dob := s.DateOfBirth
		out.DateOfBirth = &dob
	}
	return out
}

func FromDomainList(list []*domain.Student) []Student {
	out := make([]Student, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomain(s))
	}
	return out
}
