package memory

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
	"github.com/Apurer/recordkeeper/internal/domains/books/ports"
	"github.com/Apurer/recordkeeper/internal/shared/entitystore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory book persistence adapter.
type Repository struct {
	store *entitystore.Store[domain.Book]
}

// NewRepository builds an empty repository. Options are passed to the underlying store.
func NewRepository(opts ...entitystore.Option) *Repository {
	schema := entitystore.Schema[domain.Book]{
		ID:         func(b domain.Book) int64 { return b.ID },
		SetID:      func(b *domain.Book, id int64) { b.ID = id },
		NaturalKey: func(b domain.Book) string { return strings.TrimSpace(b.ISBN) },
		Created: func(b *domain.Book, at time.Time) {
			b.CreatedAt = at
			b.UpdatedAt = at
		},
		Updated: func(b *domain.Book, at time.Time) { b.UpdatedAt = at },
	}
	return &Repository{store: entitystore.New(schema, opts...)}
}

func (r *Repository) Add(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, errors.New("book is nil")
	}
	saved, err := r.store.Add(*book)
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	book, ok := r.store.GetByID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &book, nil
}

func (r *Repository) GetByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	key := strings.TrimSpace(isbn)
	book, ok := r.store.FindOne(func(b domain.Book) bool { return strings.TrimSpace(b.ISBN) == key })
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &book, nil
}

func (r *Repository) ListAvailable(_ context.Context) ([]*domain.Book, error) {
	return toPointers(r.store.ListWhere(
		func(b domain.Book) bool { return b.IsAvailable },
		func(a, b domain.Book) int { return cmp.Compare(a.Title, b.Title) },
	)), nil
}

func (r *Repository) ListByRatingRange(_ context.Context, min, max float64) ([]*domain.Book, error) {
	return toPointers(r.store.ListWhere(
		func(b domain.Book) bool { return b.IsAvailable && b.RatedWithin(min, max) },
		func(a, b domain.Book) int { return cmp.Compare(b.Rating, a.Rating) },
	)), nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate ports.Mutation) (*domain.Book, error) {
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	updated, found, err := r.store.UpdateFields(id, func(b *domain.Book) error { return mutate(b) })
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// Len reports how many books were ever stored, withdrawn ones included.
func (r *Repository) Len() int {
	return r.store.Len()
}

func translate(err error) error {
	if errors.Is(err, entitystore.ErrConflict) {
		return ports.ErrConflict
	}
	return err
}

func toPointers(list []domain.Book) []*domain.Book {
	result := make([]*domain.Book, 0, len(list))
	for i := range list {
		result = append(result, &list[i])
	}
	return result
}
