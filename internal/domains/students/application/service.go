package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
	"github.com/Apurer/recordkeeper/internal/domains/students/ports"
)

// Service orchestrates the students use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddStudent enrolls a student; the enrollment date is stamped by the repository.
func (s *Service) AddStudent(ctx context.Context, input types.AddStudentInput) (*domain.Student, error) {
	student, err := domain.NewStudent(input.FirstName, input.LastName, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	student.DateOfBirth = input.DateOfBirth
	student.Address = strings.TrimSpace(input.Address)
	student.GPA = input.GPA
	if err := student.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Add(ctx, student)
}

// GetStudentByID returns inactive students as well.
func (s *Service) GetStudentByID(ctx context.Context, id int64) (*domain.Student, error) {
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

func (s *Service) ListActiveStudents(ctx context.Context) ([]*domain.Student, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListStudentsByGPARange(ctx context.Context, r types.GPARange) ([]*domain.Student, error) {
	if r.Min > r.Max {
		return nil, mapError(ErrInvalidRange)
	}
	return s.repo.ListByGPARange(ctx, r.Min, r.Max)
}

func (s *Service) UpdateStudent(ctx context.Context, id int64, input types.StudentMutationInput) (*domain.Student, error) {
	updated, err := absentOnNotFound(s.repo.Update(ctx, id, func(student *domain.Student) error {
		return applyPartialMutation(student, input)
	}))
	return updated, mapError(err)
}

// DeleteStudent deactivates the student. False means no such student.
func (s *Service) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Update(ctx, id, func(student *domain.Student) error {
		student.Deactivate()
		return nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func applyPartialMutation(target *domain.Student, input types.StudentMutationInput) error {
	if input.FirstName != nil {
		target.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		target.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		target.Email = strings.TrimSpace(*input.Email)
	}
	if input.DateOfBirth != nil {
		target.DateOfBirth = *input.DateOfBirth
	}
	if input.Address != nil {
		target.Address = strings.TrimSpace(*input.Address)
	}
	if input.GPA != nil {
		target.GPA = *input.GPA
	}
	return target.Validate()
}

func absentOnNotFound(student *domain.Student, err error) (*domain.Student, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return student, err
}

var _ ports.Service = (*Service)(nil)
