package ports

import (
	"context"

	"github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
)

// Service exposes the books use cases to adapters. Lookups and updates of a
// missing book return a nil book (or false) with a nil error.
type Service interface {
	AddBook(ctx context.Context, input types.AddBookInput) (*domain.Book, error)
	GetBookByID(ctx context.Context, id int64) (*domain.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	ListAvailableBooks(ctx context.Context) ([]*domain.Book, error)
	ListBooksByRatingRange(ctx context.Context, r types.RatingRange) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, input types.BookMutationInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) (bool, error)
	UpdateStockQuantity(ctx context.Context, id int64, quantity int) (bool, error)
}
