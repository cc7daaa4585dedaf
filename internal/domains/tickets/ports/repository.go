package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
)

var (
	ErrNotFound = errors.New("sales ticket not found")
	ErrConflict = errors.New("a sales ticket with this number already exists")
)

// Mutation edits a loaded ticket in place; returning an error aborts the update.
type Mutation func(ticket *domain.SalesTicket) error

// Repository persists sales tickets. Listings are ordered by creation date, newest first.
type Repository interface {
	Add(ctx context.Context, ticket *domain.SalesTicket) (*domain.SalesTicket, error)
	GetByID(ctx context.Context, id int64) (*domain.SalesTicket, error)
	GetByNumber(ctx context.Context, number string) (*domain.SalesTicket, error)
	List(ctx context.Context) ([]*domain.SalesTicket, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.SalesTicket, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.SalesTicket, error)
	// TotalSales sums the net amount of Completed tickets created in [start, end].
	TotalSales(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	Update(ctx context.Context, id int64, mutate Mutation) (*domain.SalesTicket, error)
}
