package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
	"github.com/Apurer/recordkeeper/internal/domains/books/ports"
)

// Service orchestrates the books bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the books service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddBook validates and catalogs a new book.
func (s *Service) AddBook(ctx context.Context, input types.AddBookInput) (*domain.Book, error) {
	book, err := domain.NewBook(input.Title, input.Author, input.ISBN)
	if err != nil {
		return nil, mapError(err)
	}
	book.Price = input.Price
	book.PublicationDate = input.PublicationDate
	book.Description = strings.TrimSpace(input.Description)
	book.Rating = input.Rating
	book.StockQuantity = input.StockQuantity
	if err := book.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Add(ctx, book)
}

// GetBookByID loads a book whether or not it is still available.
func (s *Service) GetBookByID(ctx context.Context, id int64) (*domain.Book, error) {
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

// GetBookByISBN loads a book by its natural key.
func (s *Service) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return absentOnNotFound(s.repo.GetByISBN(ctx, strings.TrimSpace(isbn)))
}

// ListAvailableBooks returns the books still on offer ordered by title.
func (s *Service) ListAvailableBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.ListAvailable(ctx)
}

// ListBooksByRatingRange returns available books rated within the range, best rated first.
func (s *Service) ListBooksByRatingRange(ctx context.Context, r types.RatingRange) ([]*domain.Book, error) {
	if r.Min > r.Max {
		return nil, mapError(ErrInvalidRange)
	}
	return s.repo.ListByRatingRange(ctx, r.Min, r.Max)
}

// UpdateBook applies the supplied fields only.
func (s *Service) UpdateBook(ctx context.Context, id int64, input types.BookMutationInput) (*domain.Book, error) {
	updated, err := s.repo.Update(ctx, id, func(book *domain.Book) error {
		return applyPartialMutation(book, input)
	})
	updated, err = absentOnNotFound(updated, err)
	return updated, mapError(err)
}

// DeleteBook withdraws a book; it stays retrievable by id. False means no such book.
func (s *Service) DeleteBook(ctx context.Context, id int64) (bool, error) {
	return found(s.repo.Update(ctx, id, func(book *domain.Book) error {
		book.Withdraw()
		return nil
	}))
}

// UpdateStockQuantity records the stock level and toggles availability with it.
func (s *Service) UpdateStockQuantity(ctx context.Context, id int64, quantity int) (bool, error) {
	ok, err := found(s.repo.Update(ctx, id, func(book *domain.Book) error {
		return book.Restock(quantity)
	}))
	return ok, mapError(err)
}

func applyPartialMutation(target *domain.Book, input types.BookMutationInput) error {
	if input.Title != nil {
		target.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		target.Author = strings.TrimSpace(*input.Author)
	}
	if input.ISBN != nil {
		target.ISBN = strings.TrimSpace(*input.ISBN)
	}
	if input.Price != nil {
		target.Price = *input.Price
	}
	if input.PublicationDate != nil {
		target.PublicationDate = *input.PublicationDate
	}
	if input.Description != nil {
		target.Description = strings.TrimSpace(*input.Description)
	}
	if input.Rating != nil {
		target.Rating = *input.Rating
	}
	return target.Validate()
}

func absentOnNotFound(book *domain.Book, err error) (*domain.Book, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return book, err
}

func found(_ *domain.Book, err error) (bool, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ ports.Service = (*Service)(nil)
