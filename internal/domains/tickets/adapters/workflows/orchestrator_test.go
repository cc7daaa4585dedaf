package workflows

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/memory"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/application"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
)

func TestInlineCheckout_PaysAndCompletes(t *testing.T) {
	svc := application.NewService(memory.NewRepository())
	ctx := context.Background()
	ticket, err := svc.CreateTicket(ctx, types.CreateTicketInput{CustomerName: "A", SalesRepresentative: "B", TotalAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	out, err := NewInlineCheckout(svc).CheckoutTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.IsPaid)
	assert.Equal(t, domain.StatusCompleted, out.Status)
	assert.NotNil(t, out.CompletedDate)
}

func TestInlineCheckout_CancelledAndMissing(t *testing.T) {
	svc := application.NewService(memory.NewRepository())
	ctx := context.Background()
	ticket, err := svc.CreateTicket(ctx, types.CreateTicketInput{CustomerName: "A", SalesRepresentative: "B"})
	require.NoError(t, err)
	_, err = svc.CancelTicket(ctx, ticket.ID)
	require.NoError(t, err)

	checkout := NewInlineCheckout(svc)
	_, err = checkout.CheckoutTicket(ctx, ticket.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := svc.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPaid)

	missing, err := checkout.CheckoutTicket(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
