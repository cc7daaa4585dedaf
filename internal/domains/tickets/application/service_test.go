package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/memory"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService() (*Service, *memory.Repository, *clock) {
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	repo := memory.NewRepository()
	return NewService(repo, WithClock(c.Now)), repo, c
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func openTicket(t *testing.T, svc *Service, total int64) *domain.SalesTicket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), types.CreateTicketInput{
		CustomerName:        "Acme",
		SalesRepresentative: "Jo",
		TotalAmount:         decimal.NewFromInt(total),
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicket_NetAmountAndZeroSalesBeforeCompletion(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, types.CreateTicketInput{
		CustomerName:        "Acme",
		SalesRepresentative: "Jo",
		TotalAmount:         decimal.NewFromInt(1000),
		DiscountAmount:      amount(50),
		TaxAmount:           amount(30),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, ticket.Status)
	assert.Equal(t, c.Now(), ticket.CreatedDate)
	assert.True(t, ticket.NetAmount().Equal(decimal.NewFromInt(980)))

	total, err := svc.TotalSales(ctx, types.DateRange{Start: c.Now().Add(-time.Hour), End: c.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCreateTicket_DuplicateNumberConflicts(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, types.CreateTicketInput{TicketNumber: "ST-1", CustomerName: "A", SalesRepresentative: "B"})
	require.NoError(t, err)
	_, err = svc.CreateTicket(ctx, types.CreateTicketInput{TicketNumber: "ST-1", CustomerName: "C", SalesRepresentative: "D"})
	require.ErrorIs(t, err, ports.ErrConflict)
	assert.Equal(t, 1, repo.Len())

	got, err := svc.GetTicketByNumber(ctx, "ST-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.CustomerName)
}

func TestCreateTicket_Invalid(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreateTicket(context.Background(), types.CreateTicketInput{CustomerName: "A", SalesRepresentative: "B", TaxAmount: amount(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreateTicket(context.Background(), types.CreateTicketInput{SalesRepresentative: "B"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.Len())
}

func TestCompleteTicket_StampsOnce(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()
	ticket := openTicket(t, svc, 100)

	ok, err := svc.StartTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)

	c.Advance(time.Hour)
	ok, err = svc.CompleteTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := svc.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedDate)
	first := *got.CompletedDate
	assert.False(t, first.Before(got.CreatedDate))

	c.Advance(time.Hour)
	ok, err = svc.CompleteTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = svc.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *got.CompletedDate)
}

func TestUpdateTicketStatus_RejectsIllegalMoves(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	ticket := openTicket(t, svc, 100)

	_, err := svc.CompleteTicket(ctx, ticket.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	ok, err := svc.CancelTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.StartTicket(ctx, ticket.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.UpdateTicketStatus(ctx, ticket.ID, domain.Status("Archived"))
	require.ErrorIs(t, err, ErrInvalidInput)

	ok, err = svc.StartTicket(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTotalSales_CompletedOnlyWithinRange(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()
	start := c.Now()

	done, err := svc.CreateTicket(ctx, types.CreateTicketInput{
		CustomerName: "A", SalesRepresentative: "B", TotalAmount: decimal.NewFromInt(1000),
		DiscountAmount: amount(50), TaxAmount: amount(30),
	})
	require.NoError(t, err)
	openTicket(t, svc, 500)
	c.Advance(48 * time.Hour)
	late := openTicket(t, svc, 700)

	for _, id := range []int64{done.ID, late.ID} {
		_, err := svc.StartTicket(ctx, id)
		require.NoError(t, err)
		_, err = svc.CompleteTicket(ctx, id)
		require.NoError(t, err)
	}

	total, err := svc.TotalSales(ctx, types.DateRange{Start: start, End: start.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(980)), total.String())

	_, err = svc.TotalSales(ctx, types.DateRange{Start: start.Add(time.Hour), End: start})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListings(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()
	start := c.Now()

	first := openTicket(t, svc, 1)
	c.Advance(time.Hour)
	second := openTicket(t, svc, 2)
	_, err := svc.StartTicket(ctx, second.ID)
	require.NoError(t, err)

	all, err := svc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	inProgress, err := svc.ListTicketsByStatus(ctx, "inprogress")
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, second.ID, inProgress[0].ID)

	window, err := svc.ListTicketsByDateRange(ctx, types.DateRange{Start: start, End: start})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, first.ID, window[0].ID)
}

func TestUpdateTicket_KeepsStatusAndNumber(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	ticket := openTicket(t, svc, 100)

	notes := "  call back "
	updated, err := svc.UpdateTicket(ctx, ticket.ID, types.TicketMutationInput{Notes: &notes, TaxAmount: amount(7)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "call back", updated.Notes)
	assert.Equal(t, ticket.TicketNumber, updated.TicketNumber)
	assert.Equal(t, domain.StatusNew, updated.Status)
	assert.True(t, updated.NetAmount().Equal(decimal.NewFromInt(107)))

	ok, err := svc.MarkTicketAsPaid(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)
	paid, err := svc.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	missing, err := svc.UpdateTicket(ctx, 9, types.TicketMutationInput{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
