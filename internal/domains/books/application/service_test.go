package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/domains/books/adapters/memory"
	"github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
	"github.com/Apurer/recordkeeper/internal/domains/books/ports"
	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

func newTestService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	return NewService(repo), repo
}

func addBook(t *testing.T, svc *Service, title, isbn string, rating float64) *domain.Book {
	t.Helper()
	book, err := svc.AddBook(context.Background(), types.AddBookInput{
		Title:  title,
		Author: "Author",
		ISBN:   isbn,
		Price:  decimal.RequireFromString("19.99"),
		Rating: rating,
	})
	require.NoError(t, err)
	return book
}

func TestAddBook_DefaultsAndRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	book := addBook(t, svc, "  Go in Practice ", "978-0123456789", 4.5)
	assert.NotZero(t, book.ID)
	assert.True(t, book.IsAvailable)
	assert.Equal(t, "Go in Practice", book.Title)
	assert.False(t, book.CreatedAt.IsZero())

	got, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, got)
}

func TestAddBook_InvalidInput(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.AddBook(context.Background(), types.AddBookInput{Title: "", Author: "A", ISBN: "123"})
	require.ErrorIs(t, err, ErrInvalidInput)
	fields, ok := validation.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "Title")
	assert.Contains(t, fields, "ISBN")

	_, err = svc.AddBook(context.Background(), types.AddBookInput{
		Title: "T", Author: "A", ISBN: "0123456789", Price: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddBook(context.Background(), types.AddBookInput{Title: "T", Author: "A", ISBN: "0123456789", Rating: 5.1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddBook(context.Background(), types.AddBookInput{Title: "T", Author: "A", ISBN: "0123456789", Rating: 4.55})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.Len())
}

func TestAddBook_DuplicateISBNConflicts(t *testing.T) {
	svc, repo := newTestService()
	addBook(t, svc, "First", "978-0123456789", 4)

	_, err := svc.AddBook(context.Background(), types.AddBookInput{Title: "Second", Author: "B", ISBN: "978-0123456789"})
	require.ErrorIs(t, err, ports.ErrConflict)
	assert.Equal(t, 1, repo.Len())
}

func TestDeleteBook_IsSoft(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	kept := addBook(t, svc, "Kept", "0000000001", 3)
	gone := addBook(t, svc, "Gone", "0000000002", 3)

	ok, err := svc.DeleteBook(ctx, gone.ID)
	require.NoError(t, err)
	require.True(t, ok)

	list, err := svc.ListAvailableBooks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)

	got, err := svc.GetBookByID(ctx, gone.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsAvailable)

	// the ISBN of a withdrawn book stays taken
	_, err = svc.AddBook(ctx, types.AddBookInput{Title: "Again", Author: "A", ISBN: "0000000002"})
	require.ErrorIs(t, err, ports.ErrConflict)

	ok, err = svc.DeleteBook(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListBooksByRatingRange_OrdersByRatingDescending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	lower := addBook(t, svc, "Lower", "978-0123456789", 4.5)
	higher := addBook(t, svc, "Higher", "978-0987654321", 4.8)
	addBook(t, svc, "Outside", "978-1111111111", 3.2)

	list, err := svc.ListBooksByRatingRange(ctx, types.RatingRange{Min: 4.0, Max: 5.0})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, higher.ID, list[0].ID)
	assert.Equal(t, lower.ID, list[1].ID)

	_, err = svc.ListBooksByRatingRange(ctx, types.RatingRange{Min: 5, Max: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAvailableBooks_OrdersByTitle(t *testing.T) {
	svc, _ := newTestService()
	addBook(t, svc, "Zebra", "0000000001", 1)
	addBook(t, svc, "Apple", "0000000002", 1)

	list, err := svc.ListAvailableBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Apple", list[0].Title)
	assert.Equal(t, "Zebra", list[1].Title)
}

func TestUpdateBook_AppliesOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	book := addBook(t, svc, "Original", "0000000001", 2)

	rating := 4.2
	updated, err := svc.UpdateBook(ctx, book.ID, types.BookMutationInput{Rating: &rating})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 4.2, updated.Rating)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, book.ISBN, updated.ISBN)
	assert.Equal(t, book.CreatedAt, updated.CreatedAt)

	bad := 9.0
	_, err = svc.UpdateBook(ctx, book.ID, types.BookMutationInput{Rating: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)
	current, err := svc.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.2, current.Rating)

	missing, err := svc.UpdateBook(ctx, 404, types.BookMutationInput{Rating: &rating})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateBook_ChangedISBNStaysReserved(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	book := addBook(t, svc, "Original", "978-0123456789", 2)

	isbn := "978-0987654321"
	_, err := svc.UpdateBook(ctx, book.ID, types.BookMutationInput{ISBN: &isbn})
	require.NoError(t, err)

	_, err = svc.AddBook(ctx, types.AddBookInput{Title: "Other", Author: "B", ISBN: "978-0123456789"})
	require.ErrorIs(t, err, ports.ErrConflict)
}

func TestUpdateStockQuantity_TogglesAvailability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	book := addBook(t, svc, "Stocked", "0000000001", 2)

	ok, err := svc.UpdateStockQuantity(ctx, book.ID, 0)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := svc.GetBookByID(ctx, book.ID)
	assert.False(t, got.IsAvailable)

	ok, err = svc.UpdateStockQuantity(ctx, book.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ = svc.GetBookByID(ctx, book.ID)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, 3, got.StockQuantity)

	_, err = svc.UpdateStockQuantity(ctx, book.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	ok, err = svc.UpdateStockQuantity(ctx, 404, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingRepo struct {
	ports.Repository
	err error
}

func (f failingRepo) GetByID(context.Context, int64) (*domain.Book, error) { return nil, f.err }

func TestGetBookByID_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(failingRepo{err: boom})

	_, err := svc.GetBookByID(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}
