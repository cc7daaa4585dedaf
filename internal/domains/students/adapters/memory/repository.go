package memory

import (
	"cmp"
	"context"
	"errors"
	"time"

	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
	"github.com/Apurer/recordkeeper/internal/domains/students/ports"
	"github.com/Apurer/recordkeeper/internal/shared/entitystore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps students in process memory.
type Repository struct {
	store *entitystore.Store[domain.Student]
}

func NewRepository(opts ...entitystore.Option) *Repository {
	schema := entitystore.Schema[domain.Student]{
		ID:    func(s domain.Student) int64 { return s.ID },
		SetID: func(s *domain.Student, id int64) { s.ID = id },
		Created: func(s *domain.Student, at time.Time) {
			s.EnrollmentDate = at
			s.UpdatedAt = at
		},
		Updated: func(s *domain.Student, at time.Time) { s.UpdatedAt = at },
	}
	return &Repository{store: entitystore.New(schema, opts...)}
}

func (r *Repository) Add(_ context.Context, student *domain.Student) (*domain.Student, error) {
	if student == nil {
		return nil, errors.New("student is nil")
	}
	saved, err := r.store.Add(*student)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	student, ok := r.store.GetByID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &student, nil
}

func (r *Repository) ListActive(_ context.Context) ([]*domain.Student, error) {
	return toPointers(r.store.ListWhere(
		func(s domain.Student) bool { return s.IsActive },
		byName,
	)), nil
}

func (r *Repository) ListByGPARange(_ context.Context, min, max float64) ([]*domain.Student, error) {
	return toPointers(r.store.ListWhere(
		func(s domain.Student) bool { return s.IsActive && s.GPAWithin(min, max) },
		func(a, b domain.Student) int { return cmp.Compare(b.GPA, a.GPA) },
	)), nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate ports.Mutation) (*domain.Student, error) {
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	updated, found, err := r.store.UpdateFields(id, func(s *domain.Student) error { return mutate(s) })
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func byName(a, b domain.Student) int {
	if c := cmp.Compare(a.LastName, b.LastName); c != 0 {
		return c
	}
	return cmp.Compare(a.FirstName, b.FirstName)
}

func toPointers(list []domain.Student) []*domain.Student {
	result := make([]*domain.Student, 0, len(list))
	for i := range list {
		result = append(result, &list[i])
	}
	return result
}
