package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

const (
	// MinRating and MaxRating bound the reader rating.
	MinRating = 0.0
	MaxRating = 5.0
)

// Book is the catalog entry managed by the books bounded context.
type Book struct {
	ID              int64
	Title           string `validate:"notblank,max=100"`
	Author          string `validate:"notblank,max=50"`
	ISBN            string `validate:"required,isbn_digits,max=17"`
	Price           decimal.Decimal
	PublicationDate time.Time
	Description     string `validate:"max=500"`
	IsAvailable     bool
	Rating          float64 `validate:"gte=0,lte=5,decimals=1"`
	StockQuantity   int     `validate:"gte=0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook builds an available book with no stock and no rating, then validates it.
func NewBook(title, author, isbn string) (*Book, error) {
	b := &Book{
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        strings.TrimSpace(isbn),
		IsAvailable: true,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate enforces the field constraints of the aggregate.
func (b *Book) Validate() error {
	return validation.Collect(b, func(fields map[string]string) {
		if b.Price.IsNegative() {
			fields["Price"] = "must be greater than or equal to 0"
		}
	})
}

// Withdraw marks the book unavailable without removing it.
func (b *Book) Withdraw() {
	b.IsAvailable = false
}

// Restock records the on-hand quantity; a book with nothing on hand is unavailable.
func (b *Book) Restock(quantity int) error {
	if quantity < 0 {
		return &validation.Error{Fields: map[string]string{"StockQuantity": "must be greater than or equal to 0"}}
	}
	b.StockQuantity = quantity
	b.IsAvailable = quantity > 0
	return nil
}

// RatedWithin reports whether the rating falls in [min, max].
func (b Book) RatedWithin(min, max float64) bool {
	return b.Rating >= min && b.Rating <= max
}
