package tickets

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ticketdomain "github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	ticketports "github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
)

const (
	// MarkPaidActivityName flags a ticket as paid.
	MarkPaidActivityName = "tickets.activities.MarkPaid"
	// CompleteActivityName moves a ticket to Completed, starting it first when still New.
	CompleteActivityName = "tickets.activities.Complete"

	errTypeNotFound   = "TicketNotFound"
	errTypeTransition = "InvalidTransition"
)

// TicketRef identifies the ticket an activity works on.
type TicketRef struct {
	ID int64
}

// Activities groups the activities that operate on sales tickets.
type Activities struct {
	service ticketports.Service
}

func NewActivities(service ticketports.Service) *Activities {
	return &Activities{service: service}
}

// MarkPaid is idempotent: paying a paid ticket succeeds. Cancelled tickets are refused.
func (a *Activities) MarkPaid(ctx context.Context, ref TicketRef) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return errors.New("ticket activities not initialized")
	}
	logger.Info("MarkPaid activity started", "ticketId", ref.ID)
	ticket, err := a.service.GetTicketByID(ctx, ref.ID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return notFound(ref.ID)
	}
	if ticket.Status == ticketdomain.StatusCancelled {
		return classify(fmt.Errorf("%w: cancelled ticket cannot be paid", ticketdomain.ErrInvalidTransition))
	}
	ok, err := a.service.MarkTicketAsPaid(ctx, ref.ID)
	if err != nil {
		logger.Error("MarkPaid activity failed", "ticketId", ref.ID, "error", err)
		return err
	}
	if !ok {
		return notFound(ref.ID)
	}
	logger.Info("MarkPaid activity completed", "ticketId", ref.ID)
	return nil
}

// Complete starts a New ticket and then completes it. Completing a Completed ticket is a no-op.
func (a *Activities) Complete(ctx context.Context, ref TicketRef) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return errors.New("ticket activities not initialized")
	}
	logger.Info("Complete activity started", "ticketId", ref.ID)
	ticket, err := a.service.GetTicketByID(ctx, ref.ID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return notFound(ref.ID)
	}
	if ticket.Status == ticketdomain.StatusNew {
		if _, err := a.service.StartTicket(ctx, ref.ID); err != nil {
			return classify(err)
		}
	}
	ok, err := a.service.CompleteTicket(ctx, ref.ID)
	if err != nil {
		logger.Error("Complete activity failed", "ticketId", ref.ID, "error", err)
		return classify(err)
	}
	if !ok {
		return notFound(ref.ID)
	}
	logger.Info("Complete activity completed", "ticketId", ref.ID)
	return nil
}

func notFound(id int64) error {
	return temporal.NewNonRetryableApplicationError(fmt.Sprintf("ticket %d not found", id), errTypeNotFound, ticketports.ErrNotFound)
}

func classify(err error) error {
	if errors.Is(err, ticketdomain.ErrInvalidTransition) {
		return temporal.NewNonRetryableApplicationError(err.Error(), errTypeTransition, err)
	}
	return err
}

// IsNotFound reports whether a workflow or activity error carries the not-found failure type.
func IsNotFound(err error) bool {
	return hasType(err, errTypeNotFound)
}

// IsInvalidTransition reports whether the ticket was in a status that cannot be completed.
func IsInvalidTransition(err error) bool {
	return hasType(err, errTypeTransition)
}

func hasType(err error, kind string) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == kind
}
