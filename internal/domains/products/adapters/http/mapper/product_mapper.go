package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	IsAvailable   bool            `json:"isAvailable"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

type CreateProduct struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

type PatchProduct struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
}

// Discount carries a percentage between 0 and 100.
type Discount struct {
	Percentage *decimal.Decimal `json:"percentage" binding:"required"`
}

// DiscountResult reports how many products a catalog-wide discount touched.
type DiscountResult struct {
	Updated int `json:"updated"`
}

func ToCreateInput(p CreateProduct) types.CreateProductInput {
	return types.CreateProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func ToMutationInput(p PatchProduct) types.ProductMutationInput {
	return types.ProductMutationInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func FromDomain(p *domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDomainList(list []*domain.Product) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomain(p))
	}
	return out
}
