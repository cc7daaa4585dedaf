package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
)

// Book is the transport representation of a book.
type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	ISBN            string          `json:"isbn"`
	Price           decimal.Decimal `json:"price"`
	PublicationDate *time.Time      `json:"publicationDate,omitempty"`
	Description     string          `json:"description,omitempty"`
	IsAvailable     bool            `json:"isAvailable"`
	Rating          float64         `json:"rating"`
	StockQuantity   int             `json:"stockQuantity"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateBook is the payload accepted when cataloging a book.
type CreateBook struct {
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	ISBN            string          `json:"isbn"`
	Price           decimal.Decimal `json:"price"`
	PublicationDate *time.Time      `json:"publicationDate"`
	Description     string          `json:"description"`
	Rating          float64         `json:"rating"`
	StockQuantity   int             `json:"stockQuantity"`
}

// PatchBook carries the fields a client wants to change.
type PatchBook struct {
	Title           *string          `json:"title"`
	Author          *string          `json:"author"`
	ISBN            *string          `json:"isbn"`
	Price           *decimal.Decimal `json:"price"`
	PublicationDate *time.Time       `json:"publicationDate"`
	Description     *string          `json:"description"`
	Rating          *float64         `json:"rating"`
}

// StockUpdate sets the on-hand quantity.
type StockUpdate struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ToAddInput converts the create payload to the application input.
func ToAddInput(payload CreateBook) types.AddBookInput {
	input := types.AddBookInput{
		Title:         payload.Title,
		Author:        payload.Author,
		ISBN:          payload.ISBN,
		Price:         payload.Price,
		Description:   payload.Description,
		Rating:        payload.Rating,
		StockQuantity: payload.StockQuantity,
	}
	if payload.PublicationDate != nil {
		input.PublicationDate = *payload.PublicationDate
	}
	return input
}

// ToMutationInput converts the patch payload to the application input.
func ToMutationInput(payload PatchBook) types.BookMutationInput {
	return types.BookMutationInput{
		Title:           payload.Title,
		Author:          payload.Author,
		ISBN:            payload.ISBN,
		Price:           payload.Price,
		PublicationDate: payload.PublicationDate,
		Description:     payload.Description,
		Rating:          payload.Rating,
	}
}

// FromDomain converts a book aggregate to its transport form.
func FromDomain(book *domain.Book) Book {
	out := Book{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		Price:         book.Price,
		Description:   book.Description,
		IsAvailable:   book.IsAvailable,
		Rating:        book.Rating,
		StockQuantity: book.StockQuantity,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
	if !book.PublicationDate.IsZero() {
		date := book.PublicationDate
		out.PublicationDate = &date
	}
	return out
}

// FromDomainList converts a list of books.
func FromDomainList(books []*domain.Book) []Book {
	result := make([]Book, 0, len(books))
	for _, book := range books {
		result = append(result, FromDomain(book))
	}
	return result
}
