package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ticketactivities "github.com/Apurer/recordkeeper/internal/platform/temporal/activities/tickets"
)

// RunTicketCheckoutSequence marks the ticket paid and then completes it.
func RunTicketCheckoutSequence(ctx workflow.Context, ref ticketactivities.TicketRef) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("ticket checkout sequence started", "ticketId", ref.ID)
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	})

	if err := workflow.ExecuteActivity(ctx, ticketactivities.MarkPaidActivityName, ref).Get(ctx, nil); err != nil {
		logger.Error("ticket checkout sequence failed to mark paid", "ticketId", ref.ID, "error", err)
		return err
	}
	if err := workflow.ExecuteActivity(ctx, ticketactivities.CompleteActivityName, ref).Get(ctx, nil); err != nil {
		logger.Error("ticket checkout sequence failed to complete", "ticketId", ref.ID, "error", err)
		return err
	}
	logger.Info("ticket checkout sequence completed", "ticketId", ref.ID)
	return nil
}
