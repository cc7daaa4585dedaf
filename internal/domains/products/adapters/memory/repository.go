package memory

import (
	"context"
	"errors"

	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
	"github.com/Apurer/recordkeeper/internal/domains/products/ports"
	"github.com/Apurer/recordkeeper/internal/shared/entitystore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps products in process memory. Timestamps are owned by the service.
type Repository struct {
	store *entitystore.Store[domain.Product]
}

func NewRepository() *Repository {
	return &Repository{store: entitystore.New(entitystore.Schema[domain.Product]{
		ID:    func(p domain.Product) int64 { return p.ID },
		SetID: func(p *domain.Product, id int64) { p.ID = id },
		Clone: domain.Product.Clone,
	})}
}

func (r *Repository) Add(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	saved, err := r.store.Add(*product)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.store.GetByID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &product, nil
}

func (r *Repository) ListAvailable(_ context.Context) ([]*domain.Product, error) {
	list := r.store.ListWhere(func(p domain.Product) bool { return p.IsAvailable }, nil)
	out := make([]*domain.Product, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate ports.Mutation) (*domain.Product, error) {
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	updated, found, err := r.store.UpdateFields(id, func(p *domain.Product) error {
		created := p.CreatedAt
		if err := mutate(p); err != nil {
			return err
		}
		p.CreatedAt = created
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAvailable mutates products one at a time; a product withdrawn meanwhile is skipped.
func (r *Repository) UpdateAvailable(_ context.Context, mutate ports.Mutation) (int, error) {
	if mutate == nil {
		return 0, errors.New("mutation is nil")
	}
	changed := 0
	for _, p := range r.store.ListWhere(func(p domain.Product) bool { return p.IsAvailable }, nil) {
		_, found, err := r.store.UpdateFields(p.ID, func(current *domain.Product) error {
			if !current.IsAvailable {
				return errSkip
			}
			return mutate(current)
		})
		switch {
		case errors.Is(err, errSkip), !found:
			continue
		case err != nil:
			return changed, err
		}
		changed++
	}
	return changed, nil
}

var errSkip = errors.New("product no longer available")
