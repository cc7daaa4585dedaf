package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

// Service orchestrates the sales ticket use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for creation and completion stamps.
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

// CreateTicket opens a New ticket. A duplicate ticket number yields ports.ErrConflict.
func (s *Service) CreateTicket(ctx context.Context, input types.CreateTicketInput) (*domain.SalesTicket, error) {
	ticket, err := domain.NewSalesTicket(input.CustomerName, input.SalesRepresentative, input.TotalAmount, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if number := strings.TrimSpace(input.TicketNumber); number != "" {
		ticket.TicketNumber = number
	}
	ticket.DiscountAmount = input.DiscountAmount
	ticket.TaxAmount = input.TaxAmount
	ticket.Notes = strings.TrimSpace(input.Notes)
	if err := ticket.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Add(ctx, ticket)
}

func (s *Service) GetTicketByID(ctx context.Context, id int64) (*domain.SalesTicket, error) {
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

func (s *Service) GetTicketByNumber(ctx context.Context, number string) (*domain.SalesTicket, error) {
	return absentOnNotFound(s.repo.GetByNumber(ctx, strings.TrimSpace(number)))
}

func (s *Service) ListTickets(ctx context.Context) ([]*domain.SalesTicket, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListTicketsByStatus(ctx context.Context, status domain.Status) ([]*domain.SalesTicket, error) {
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return nil, mapError(statusError(err))
	}
	return s.repo.ListByStatus(ctx, parsed)
}

func (s *Service) ListTicketsByDateRange(ctx context.Context, r types.DateRange) ([]*domain.SalesTicket, error) {
	if r.Start.After(r.End) {
		return nil, mapError(ErrInvalidRange)
	}
	return s.repo.ListByDateRange(ctx, r.Start, r.End)
}

// UpdateTicket changes customer, representative, notes and amounts only.
func (s *Service) UpdateTicket(ctx context.Context, id int64, input types.TicketMutationInput) (*domain.SalesTicket, error) {
	updated, err := absentOnNotFound(s.repo.Update(ctx, id, func(ticket *domain.SalesTicket) error {
		return applyPartialMutation(ticket, input)
	}))
	return updated, mapError(err)
}

// UpdateTicketStatus applies the lifecycle rules; a disallowed move returns
// domain.ErrInvalidTransition and leaves the ticket unchanged.
func (s *Service) UpdateTicketStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return false, mapError(statusError(err))
	}
	return found(s.repo.Update(ctx, id, func(ticket *domain.SalesTicket) error {
		return ticket.TransitionTo(parsed, s.now())
	}))
}

func (s *Service) StartTicket(ctx context.Context, id int64) (bool, error) {
	return s.UpdateTicketStatus(ctx, id, domain.StatusInProgress)
}

func (s *Service) CompleteTicket(ctx context.Context, id int64) (bool, error) {
	return s.UpdateTicketStatus(ctx, id, domain.StatusCompleted)
}

func (s *Service) CancelTicket(ctx context.Context, id int64) (bool, error) {
	return s.UpdateTicketStatus(ctx, id, domain.StatusCancelled)
}

func (s *Service) MarkTicketAsPaid(ctx context.Context, id int64) (bool, error) {
	return found(s.repo.Update(ctx, id, func(ticket *domain.SalesTicket) error {
		ticket.MarkPaid()
		return nil
	}))
}

// TotalSales sums the net amount of Completed tickets created within the range.
func (s *Service) TotalSales(ctx context.Context, r types.DateRange) (decimal.Decimal, error) {
	if r.Start.After(r.End) {
		return decimal.Zero, mapError(ErrInvalidRange)
	}
	return s.repo.TotalSales(ctx, r.Start, r.End)
}

func applyPartialMutation(target *domain.SalesTicket, input types.TicketMutationInput) error {
	if input.CustomerName != nil {
		target.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.SalesRepresentative != nil {
		target.SalesRepresentative = strings.TrimSpace(*input.SalesRepresentative)
	}
	if input.Notes != nil {
		target.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.TotalAmount != nil {
		target.TotalAmount = *input.TotalAmount
	}
	if input.DiscountAmount != nil {
		discount := *input.DiscountAmount
		target.DiscountAmount = &discount
	}
	if input.TaxAmount != nil {
		tax := *input.TaxAmount
		target.TaxAmount = &tax
	}
	return target.Validate()
}

func statusError(err error) error {
	return &validation.Error{Fields: map[string]string{"Status": err.Error()}}
}

func absentOnNotFound(ticket *domain.SalesTicket, err error) (*domain.SalesTicket, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return ticket, err
}

func found(_ *domain.SalesTicket, err error) (bool, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

var _ ports.Service = (*Service)(nil)
