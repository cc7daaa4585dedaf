package tickets

import (
	"go.temporal.io/sdk/workflow"

	ticketactivities "github.com/Apurer/recordkeeper/internal/platform/temporal/activities/tickets"
	"github.com/Apurer/recordkeeper/internal/platform/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the registered name of the checkout workflow.
	CheckoutWorkflowName = "tickets.workflows.Checkout"
	// CheckoutTaskQueue is consumed by the worker running ticket workflows.
	CheckoutTaskQueue = "TICKET_CHECKOUT"
)

// CheckoutWorkflowInput names the ticket to check out.
type CheckoutWorkflowInput struct {
	TicketID int64
	TraceID  string
}

// CheckoutWorkflow pays and completes a ticket.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "ticketId", input.TicketID)...)
	if err := sequences.RunTicketCheckoutSequence(ctx, ticketactivities.TicketRef{ID: input.TicketID}); err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "ticketId", input.TicketID, "error", err)...)
		return err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "ticketId", input.TicketID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
