package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	ticketactivities "github.com/Apurer/recordkeeper/internal/platform/temporal/activities/tickets"
	ticketworkflows "github.com/Apurer/recordkeeper/internal/platform/temporal/workflows/tickets"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout runs ticket checkouts as Temporal workflows. One checkout per
// ticket runs at a time; a concurrent request joins the running workflow.
type TemporalCheckout struct {
	client    client.Client
	service   ports.Service
	taskQueue string
}

func NewTemporalCheckout(c client.Client, service ports.Service) *TemporalCheckout {
	return &TemporalCheckout{client: c, service: service, taskQueue: ticketworkflows.CheckoutTaskQueue}
}

// CheckoutTicket returns nil when the ticket does not exist and domain.ErrInvalidTransition
// when it was cancelled.
func (o *TemporalCheckout) CheckoutTicket(ctx context.Context, id int64) (*domain.SalesTicket, error) {
	if o == nil || o.client == nil || o.service == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	workflowID := fmt.Sprintf("ticket-checkout-%d", id)
	run, err := o.client.ExecuteWorkflow(ctx,
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: o.taskQueue},
		ticketworkflows.CheckoutWorkflow,
		ticketworkflows.CheckoutWorkflowInput{TicketID: id, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	if err := run.Get(ctx, nil); err != nil {
		switch {
		case ticketactivities.IsNotFound(err):
			return nil, nil
		case ticketactivities.IsInvalidTransition(err):
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransition, err)
		}
		return nil, err
	}
	return o.service.GetTicketByID(ctx, id)
}

// InlineCheckout performs the checkout synchronously through the service, for tests
// and environments without Temporal.
type InlineCheckout struct {
	service ports.Service
}

func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

func (o *InlineCheckout) CheckoutTicket(ctx context.Context, id int64) (*domain.SalesTicket, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	ticket, err := o.service.GetTicketByID(ctx, id)
	if err != nil || ticket == nil {
		return nil, err
	}
	if ticket.Status.Terminal() && ticket.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: %s ticket cannot be checked out", domain.ErrInvalidTransition, ticket.Status)
	}
	if _, err := o.service.MarkTicketAsPaid(ctx, id); err != nil {
		return nil, err
	}
	if ticket.Status == domain.StatusNew {
		if _, err := o.service.StartTicket(ctx, id); err != nil {
			return nil, err
		}
	}
	if _, err := o.service.CompleteTicket(ctx, id); err != nil {
		return nil, err
	}
	return o.service.GetTicketByID(ctx, id)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
