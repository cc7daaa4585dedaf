package observability

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	"github.com/Apurer/recordkeeper/internal/shared/telemetry"
)

const tracerName = "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/observability/service"

// Service decorates the tickets service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	rec     telemetry.Recorder
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.rec.Logger = logger
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.rec.Tracer = tr
		}
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, rec: telemetry.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateTicket(ctx context.Context, input types.CreateTicketInput) (*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.CreateTicket")
	defer span.End()

	ticket, err := s.inner.CreateTicket(ctx, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create ticket")
	}
	s.metrics.recordCreated(ctx)
	span.SetAttributes(attribute.Int64("ticket.id", ticket.ID), attribute.String("ticket.number", ticket.TicketNumber))
	s.rec.Info(ctx, "ticket created", slog.Int64("ticket.id", ticket.ID), slog.String("ticket.number", ticket.TicketNumber))
	return ticket, nil
}

func (s *Service) GetTicketByID(ctx context.Context, id int64) (*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.GetTicketByID", trace.WithAttributes(attribute.Int64("ticket.id", id)))
	defer span.End()

	ticket, err := s.inner.GetTicketByID(ctx, id)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load ticket", slog.Int64("ticket.id", id))
	}
	span.SetAttributes(attribute.Bool("ticket.found", ticket != nil))
	return ticket, nil
}

func (s *Service) GetTicketByNumber(ctx context.Context, number string) (*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.GetTicketByNumber", trace.WithAttributes(attribute.String("ticket.number", number)))
	defer span.End()

	ticket, err := s.inner.GetTicketByNumber(ctx, number)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to load ticket by number", slog.String("ticket.number", number))
	}
	span.SetAttributes(attribute.Bool("ticket.found", ticket != nil))
	return ticket, nil
}

func (s *Service) ListTickets(ctx context.Context) ([]*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.ListTickets")
	defer span.End()
	return s.list(ctx, span, s.inner.ListTickets)
}

func (s *Service) ListTicketsByStatus(ctx context.Context, status domain.Status) ([]*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.ListTicketsByStatus", trace.WithAttributes(attribute.String("ticket.status", string(status))))
	defer span.End()
	return s.list(ctx, span, func(ctx context.Context) ([]*domain.SalesTicket, error) {
		return s.inner.ListTicketsByStatus(ctx, status)
	})
}

func (s *Service) ListTicketsByDateRange(ctx context.Context, r types.DateRange) ([]*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.ListTicketsByDateRange")
	defer span.End()
	return s.list(ctx, span, func(ctx context.Context) ([]*domain.SalesTicket, error) {
		return s.inner.ListTicketsByDateRange(ctx, r)
	})
}

func (s *Service) UpdateTicket(ctx context.Context, id int64, input types.TicketMutationInput) (*domain.SalesTicket, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.UpdateTicket", trace.WithAttributes(attribute.Int64("ticket.id", id)))
	defer span.End()

	ticket, err := s.inner.UpdateTicket(ctx, id, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to update ticket", slog.Int64("ticket.id", id))
	}
	span.SetAttributes(attribute.Bool("ticket.found", ticket != nil))
	return ticket, nil
}

func (s *Service) UpdateTicketStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.UpdateTicketStatus",
		trace.WithAttributes(attribute.Int64("ticket.id", id), attribute.String("ticket.status", string(status))))
	defer span.End()

	ok, err := s.inner.UpdateTicketStatus(ctx, id, status)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to change ticket status",
			slog.Int64("ticket.id", id), slog.String("ticket.status", string(status)))
	}
	if ok && status == domain.StatusCompleted {
		s.metrics.recordCompleted(ctx)
	}
	s.rec.Info(ctx, "ticket status changed", slog.Int64("ticket.id", id), slog.String("ticket.status", string(status)), slog.Bool("ticket.found", ok))
	return ok, nil
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
	ctx, span := s.rec.Start(ctx, "TicketService.MarkTicketAsPaid", trace.WithAttributes(attribute.Int64("ticket.id", id)))
	defer span.End()

	ok, err := s.inner.MarkTicketAsPaid(ctx, id)
	if err != nil {
		return false, s.rec.Fail(ctx, span, err, "failed to mark ticket paid", slog.Int64("ticket.id", id))
	}
	span.SetAttributes(attribute.Bool("ticket.found", ok))
	return ok, nil
}

func (s *Service) TotalSales(ctx context.Context, r types.DateRange) (decimal.Decimal, error) {
	ctx, span := s.rec.Start(ctx, "TicketService.TotalSales")
	defer span.End()

	total, err := s.inner.TotalSales(ctx, r)
	if err != nil {
		return decimal.Zero, s.rec.Fail(ctx, span, err, "failed to total sales")
	}
	span.SetAttributes(attribute.String("tickets.total_sales", total.StringFixed(2)))
	return total, nil
}

func (s *Service) list(ctx context.Context, span trace.Span, fn func(context.Context) ([]*domain.SalesTicket, error)) ([]*domain.SalesTicket, error) {
	list, err := fn(ctx)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to list tickets")
	}
	span.SetAttributes(attribute.Int("tickets.count", len(list)))
	return list, nil
}

type serviceMetrics struct {
	created   metric.Int64Counter
	completed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("tickets.service.created", metric.WithDescription("Number of sales tickets opened"))
	completed, _ := m.Int64Counter("tickets.service.completed", metric.WithDescription("Number of sales tickets completed"))
	return serviceMetrics{created: created, completed: completed}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCompleted(ctx context.Context) {
	if m.completed != nil {
		m.completed.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
