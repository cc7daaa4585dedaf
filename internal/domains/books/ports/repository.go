package ports

import (
	"context"
	"errors"

	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrConflict = errors.New("a book with this isbn already exists")
)

// Mutation edits a loaded book in place; returning an error aborts the update.
type Mutation func(book *domain.Book) error

// Repository persists books. Lookups report absence with ErrNotFound.
type Repository interface {
	Add(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	ListAvailable(ctx context.Context) ([]*domain.Book, error)
	ListByRatingRange(ctx context.Context, min, max float64) ([]*domain.Book, error)
	Update(ctx context.Context, id int64, mutate Mutation) (*domain.Book, error)
}
