package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
)

// Service exposes the product catalog use cases. A missing product yields nil (or false) and no error.
type Service interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input types.ProductMutationInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	ApplyDiscount(ctx context.Context, id int64, percentage decimal.Decimal) (*domain.Product, error)
	ApplyDiscountToAll(ctx context.Context, percentage decimal.Decimal) (int, error)
}
