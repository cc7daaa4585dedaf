package types

import "github.com/shopspring/decimal"

// CreateProductInput carries the fields accepted when listing a product.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
}

// ProductMutationInput lists the fields a caller may change. Nil leaves the field untouched.
type ProductMutationInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
}
