package ports

import (
	"context"

	"github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
)

// Service exposes the students use cases. A missing student yields nil (or false) and no error.
type Service interface {
	AddStudent(ctx context.Context, input types.AddStudentInput) (*domain.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*domain.Student, error)
	ListActiveStudents(ctx context.Context) ([]*domain.Student, error)
	ListStudentsByGPARange(ctx context.Context, r types.GPARange) ([]*domain.Student, error)
	UpdateStudent(ctx context.Context, id int64, input types.StudentMutationInput) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id int64) (bool, error)
}
