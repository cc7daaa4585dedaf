package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

var (
	// MinPrice and MaxPrice bound the list price; discounts never take a price below MinPrice.
	MinPrice = decimal.New(1, -2)
	MaxPrice = decimal.NewFromInt(10000)
	hundred  = decimal.NewFromInt(100)
)

// Product is a catalog item sold through the product service.
type Product struct {
	ID            int64
	Name          string `validate:"notblank,max=100"`
	Description   string `validate:"max=500"`
	Price         decimal.Decimal
	StockQuantity int `validate:"gte=0"`
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// NewProduct builds an available product with trimmed text fields and validates it.
func NewProduct(name, description string, price decimal.Decimal, stock int) (*Product, error) {
	p := &Product{
		Name:          strings.TrimSpace(name),
		Description:   strings.TrimSpace(description),
		Price:         price,
		StockQuantity: stock,
		IsAvailable:   true,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate requires a price in [MinPrice, MaxPrice].
func (p *Product) Validate() error {
	return validation.Collect(p, func(fields map[string]string) {
		if p.Price.LessThan(MinPrice) {
			fields["Price"] = "must be at least " + MinPrice.String()
		} else if p.Price.GreaterThan(MaxPrice) {
			fields["Price"] = "must be less than or equal to " + MaxPrice.String()
		}
	})
}

// ApplyDiscount lowers the price by percentage (0..100) and rounds it to cents.
// The price is left unchanged when the result would fall below MinPrice.
func (p *Product) ApplyDiscount(percentage decimal.Decimal) error {
	price, err := p.DiscountedPrice(percentage)
	if err != nil {
		return err
	}
	p.Price = price
	return nil
}

// DiscountedPrice computes the price after percentage off without changing the product.
func (p Product) DiscountedPrice(percentage decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateDiscount(percentage); err != nil {
		return decimal.Decimal{}, err
	}
	cut := p.Price.Mul(percentage).Div(hundred)
	price := p.Price.Sub(cut).Round(2)
	if price.LessThan(MinPrice) {
		return decimal.Decimal{}, &validation.Error{Fields: map[string]string{
			"Percentage": fmt.Sprintf("%s%% off %s falls below the minimum price %s", percentage, p.Price.StringFixed(2), MinPrice),
		}}
	}
	return price, nil
}

// ValidateDiscount rejects percentages outside [0, 100].
func ValidateDiscount(percentage decimal.Decimal) error {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return &validation.Error{Fields: map[string]string{
			"Percentage": fmt.Sprintf("must be between 0 and 100, got %s", percentage),
		}}
	}
	return nil
}

// Withdraw takes the product off sale.
func (p *Product) Withdraw() {
	p.IsAvailable = false
}

// Clone copies the product including its optional update stamp.
func (p Product) Clone() Product {
	out := p
	if p.UpdatedAt != nil {
		at := *p.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}
