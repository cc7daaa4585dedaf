package types

import "time"

// AddStudentInput carries the fields accepted when enrolling a student.
type AddStudentInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	Address     string
	GPA         float64
}

// StudentMutationInput lists the fields a caller may change. Nil leaves the field untouched.
type StudentMutationInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
	Address     *string
	GPA         *float64
}

// GPARange bounds a GPA search, both ends inclusive.
type GPARange struct {
	Min float64
	Max float64
}
