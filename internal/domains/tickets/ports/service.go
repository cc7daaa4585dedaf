package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
)

// Service exposes the sales ticket use cases. A missing ticket yields nil (or false) and no error.
type Service interface {
	CreateTicket(ctx context.Context, input types.CreateTicketInput) (*domain.SalesTicket, error)
	GetTicketByID(ctx context.Context, id int64) (*domain.SalesTicket, error)
	GetTicketByNumber(ctx context.Context, number string) (*domain.SalesTicket, error)
	ListTickets(ctx context.Context) ([]*domain.SalesTicket, error)
	ListTicketsByStatus(ctx context.Context, status domain.Status) ([]*domain.SalesTicket, error)
	ListTicketsByDateRange(ctx context.Context, r types.DateRange) ([]*domain.SalesTicket, error)
	UpdateTicket(ctx context.Context, id int64, input types.TicketMutationInput) (*domain.SalesTicket, error)
	UpdateTicketStatus(ctx context.Context, id int64, status domain.Status) (bool, error)
	StartTicket(ctx context.Context, id int64) (bool, error)
	CompleteTicket(ctx context.Context, id int64) (bool, error)
	CancelTicket(ctx context.Context, id int64) (bool, error)
	MarkTicketAsPaid(ctx context.Context, id int64) (bool, error)
	TotalSales(ctx context.Context, r types.DateRange) (decimal.Decimal, error)
}

// CheckoutOrchestrator runs the pay-then-complete checkout of a ticket.
type CheckoutOrchestrator interface {
	CheckoutTicket(ctx context.Context, id int64) (*domain.SalesTicket, error)
}
