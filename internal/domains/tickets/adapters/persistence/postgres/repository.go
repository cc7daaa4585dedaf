package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// netAmountExpr mirrors domain.SalesTicket.NetAmount in SQL.
const netAmountExpr = "total_amount - COALESCE(discount_amount, 0) + COALESCE(tax_amount, 0)"

// Repository persists sales tickets in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type ticketRecord struct {
	ID                  int64            `gorm:"primaryKey;column:id"`
	TicketNumber        string           `gorm:"column:ticket_number;size:20;not null;uniqueIndex"`
	CustomerName        string           `gorm:"column:customer_name;size:50;not null"`
	TotalAmount         decimal.Decimal  `gorm:"column:total_amount;type:numeric(18,2);not null"`
	CreatedDate         time.Time        `gorm:"column:created_date;not null;index"`
	CompletedDate       *time.Time       `gorm:"column:completed_date"`
	Status              string           `gorm:"column:status;size:20;not null;index"`
	Notes               string           `gorm:"column:notes;size:500"`
	SalesRepresentative string           `gorm:"column:sales_representative;size:50;not null"`
	IsPaid              bool             `gorm:"column:is_paid;not null"`
	DiscountAmount      *decimal.Decimal `gorm:"column:discount_amount;type:numeric(18,2)"`
	TaxAmount           *decimal.Decimal `gorm:"column:tax_amount;type:numeric(18,2)"`
}

func (ticketRecord) TableName() string { return "sales_tickets" }

func (r *Repository) Add(ctx context.Context, ticket *domain.SalesTicket) (*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errors.New("ticket is nil")
	}
	record := toRecord(ticket)
	if record.CreatedDate.IsZero() {
		record.CreatedDate = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return first(r.db.WithContext(ctx), "ticket_number = ?", strings.TrimSpace(number))
}

func (r *Repository) List(ctx context.Context) ([]*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx))
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)))
}

func (r *Repository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("created_date >= ? AND created_date <= ?", start, end))
}

func (r *Repository) TotalSales(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	if err := r.ensureDB(); err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&ticketRecord{}).
		Select("COALESCE(SUM("+netAmountExpr+"), 0)").
		Where("status = ? AND created_date >= ? AND created_date <= ?", string(domain.StatusCompleted), start, end).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Update loads the row under lock, applies mutate and writes the result back.
func (r *Repository) Update(ctx context.Context, id int64, mutate ports.Mutation) (*domain.SalesTicket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	var result *domain.SalesTicket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := first(tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
		if err != nil {
			return err
		}
		created := ticket.CreatedDate
		if err := mutate(ticket); err != nil {
			return err
		}
		ticket.ID = id
		ticket.CreatedDate = created
		record := toRecord(ticket)
		if err := tx.Save(&record).Error; err != nil {
			return translate(err)
		}
		result = record.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) find(db *gorm.DB) ([]*domain.SalesTicket, error) {
	var records []ticketRecord
	if err := db.Order("created_date DESC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.SalesTicket, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func first(db *gorm.DB, query string, arg any) (*domain.SalesTicket, error) {
	var record ticketRecord
	if err := db.First(&record, query, arg).Error; err != nil {
		if platformpostgres.IsNotFound(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres ticket repository not configured")
	}
	return nil
}

func translate(err error) error {
	if platformpostgres.IsUniqueViolation(err) {
		return ports.ErrConflict
	}
	return err
}

func toRecord(t *domain.SalesTicket) ticketRecord {
	return ticketRecord{
		ID:                  t.ID,
		TicketNumber:        strings.TrimSpace(t.TicketNumber),
		CustomerName:        t.CustomerName,
		TotalAmount:         t.TotalAmount,
		CreatedDate:         t.CreatedDate,
		CompletedDate:       t.CompletedDate,
		Status:              string(t.Status),
		Notes:               t.Notes,
		SalesRepresentative: t.SalesRepresentative,
		IsPaid:              t.IsPaid,
		DiscountAmount:      t.DiscountAmount,
		TaxAmount:           t.TaxAmount,
	}
}

func (r ticketRecord) toDomain() *domain.SalesTicket {
	return &domain.SalesTicket{
		ID:                  r.ID,
		TicketNumber:        r.TicketNumber,
		CustomerName:        r.CustomerName,
		TotalAmount:         r.TotalAmount,
		CreatedDate:         r.CreatedDate,
		CompletedDate:       r.CompletedDate,
		Status:              domain.Status(r.Status),
		Notes:               r.Notes,
		SalesRepresentative: r.SalesRepresentative,
		IsPaid:              r.IsPaid,
		DiscountAmount:      r.DiscountAmount,
		TaxAmount:           r.TaxAmount,
	}
}
