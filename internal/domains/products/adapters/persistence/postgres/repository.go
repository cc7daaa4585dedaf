package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/recordkeeper/internal/domains/products/domain"
	"github.com/Apurer/recordkeeper/internal/domains/products/ports"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;size:100;not null"`
	Description   string          `gorm:"column:description;size:500"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null"`
	IsAvailable   bool            `gorm:"column:is_available;index"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Add(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return first(r.db.WithContext(ctx), id)
}

func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("is_available = ?", true).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) Update(ctx context.Context, id int64, mutate ports.Mutation) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	var result *domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := first(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		saved, err := save(tx, product, mutate)
		result = saved
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateAvailable locks every product on sale and rewrites each in one transaction.
func (r *Repository) UpdateAvailable(ctx context.Context, mutate ports.Mutation) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if mutate == nil {
		return 0, errors.New("mutation is nil")
	}
	changed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records []productRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_available = ?", true).Order("id ASC").
			Find(&records).Error; err != nil {
			return err
		}
		for i := range records {
			if _, err := save(tx, records[i].toDomain(), mutate); err != nil {
				return err
			}
		}
		changed = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func save(tx *gorm.DB, product *domain.Product, mutate ports.Mutation) (*domain.Product, error) {
	id, created := product.ID, product.CreatedAt
	if err := mutate(product); err != nil {
		return nil, err
	}
	product.ID, product.CreatedAt = id, created
	record := toRecord(product)
	if err := tx.Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func first(db *gorm.DB, id int64) (*domain.Product, error) {
	var record productRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if platformpostgres.IsNotFound(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
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

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		IsAvailable:   r.IsAvailable,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toDomainList(records []productRecord) []*domain.Product {
	out := make([]*domain.Product, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out
}
