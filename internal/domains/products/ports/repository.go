package ports

import (
	"context"
	"errors"

	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// Mutation edits a loaded product in place; returning an error aborts the update.
type Mutation func(product *domain.Product) error

// Repository persists products. Lookups report absence with ErrNotFound.
type Repository interface {
	Add(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// ListAvailable returns products on sale ordered by id.
	ListAvailable(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id int64, mutate Mutation) (*domain.Product, error)
	// UpdateAvailable applies mutate to every product on sale and returns how many changed.
	UpdateAvailable(ctx context.Context, mutate Mutation) (int, error)
}
