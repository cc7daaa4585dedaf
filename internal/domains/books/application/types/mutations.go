package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddBookInput carries the fields required to catalog a new book.
type AddBookInput struct {
	Title           string
	Author          string
	ISBN            string
	Price           decimal.Decimal
	PublicationDate time.Time
	Description     string
	Rating          float64
	StockQuantity   int
}

// BookMutationInput lists the fields a caller may change. Nil means "leave as is".
type BookMutationInput struct {
	Title           *string
	Author          *string
	ISBN            *string
	Price           *decimal.Decimal
	PublicationDate *time.Time
	Description     *string
	Rating          *float64
}

// RatingRange bounds a rating search, both ends inclusive.
type RatingRange struct {
	Min float64
	Max float64
}
