package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
	"github.com/Apurer/recordkeeper/internal/domains/products/ports"
)

// Service applies the catalog timestamping and partial-update rules on top of the repository.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetAllProducts lists the products on sale ordered by id.
func (s *Service) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return product, err
}

// CreateProduct stamps CreatedAt; the repository assigns the id.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Description, input.Price, input.StockQuantity)
	if err != nil {
		return nil, mapError(err)
	}
	product.CreatedAt = s.now()
	return s.repo.Add(ctx, product)
}

// UpdateProduct applies the supplied fields and stamps UpdatedAt.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input types.ProductMutationInput) (*domain.Product, error) {
	return s.update(ctx, id, func(product *domain.Product) error {
		return applyPartialMutation(product, input)
	})
}

// DeleteProduct takes the product off sale. False means no such product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	product, err := s.update(ctx, id, func(product *domain.Product) error {
		product.Withdraw()
		return nil
	})
	return product != nil, err
}

// ApplyDiscount reduces one product's price by percentage.
func (s *Service) ApplyDiscount(ctx context.Context, id int64, percentage decimal.Decimal) (*domain.Product, error) {
	if err := domain.ValidateDiscount(percentage); err != nil {
		return nil, mapError(err)
	}
	return s.update(ctx, id, func(product *domain.Product) error {
		return product.ApplyDiscount(percentage)
	})
}

// ApplyDiscountToAll reduces the price of every product on sale and reports how many changed.
// Nothing changes when any product on sale would fall below the minimum price.
func (s *Service) ApplyDiscountToAll(ctx context.Context, percentage decimal.Decimal) (int, error) {
	if err := domain.ValidateDiscount(percentage); err != nil {
		return 0, mapError(err)
	}
	available, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return 0, err
	}
	for _, product := range available {
		if _, err := product.DiscountedPrice(percentage); err != nil {
			return 0, mapError(err)
		}
	}
	changed, err := s.repo.UpdateAvailable(ctx, func(product *domain.Product) error {
		if err := product.ApplyDiscount(percentage); err != nil {
			return err
		}
		s.touch(product)
		return nil
	})
	if err != nil {
		return changed, mapError(err)
	}
	return changed, nil
}

func (s *Service) update(ctx context.Context, id int64, mutate ports.Mutation) (*domain.Product, error) {
	product, err := s.repo.Update(ctx, id, func(product *domain.Product) error {
		if err := mutate(product); err != nil {
			return err
		}
		s.touch(product)
		return nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (s *Service) touch(product *domain.Product) {
	at := s.now()
	product.UpdatedAt = &at
}

func applyPartialMutation(target *domain.Product, input types.ProductMutationInput) error {
	if input.Name != nil {
		target.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		target.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		target.Price = *input.Price
	}
	if input.StockQuantity != nil {
		target.StockQuantity = *input.StockQuantity
	}
	return target.Validate()
}

var _ ports.Service = (*Service)(nil)
