package ports

import (
	"context"
	"errors"

	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
)

var ErrNotFound = errors.New("student not found")

// Mutation edits a loaded student in place; returning an error aborts the update.
type Mutation func(student *domain.Student) error

// Repository persists students. Lookups report absence with ErrNotFound.
type Repository interface {
	Add(ctx context.Context, student *domain.Student) (*domain.Student, error)
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	ListActive(ctx context.Context) ([]*domain.Student, error)
	ListByGPARange(ctx context.Context, min, max float64) ([]*domain.Student, error)
	Update(ctx context.Context, id int64, mutate Mutation) (*domain.Student, error)
}
