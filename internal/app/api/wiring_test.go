package api

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	booksmemory "github.com/Apurer/recordkeeper/internal/domains/books/adapters/memory"
	bookstypes "github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
	ticketstypes "github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
)

func TestNewRepositories_InMemoryWithoutDatabase(t *testing.T) {
	repos := NewRepositories(nil)
	assert.IsType(t, &booksmemory.Repository{}, repos.Books)
	assert.NotNil(t, repos.Students)
	assert.NotNil(t, repos.Tickets)
	assert.NotNil(t, repos.Products)
}

func TestNewServices_DecoratedServicesWork(t *testing.T) {
	ctx := context.Background()
	services := NewServices(NewRepositories(nil), nil)

	book, err := services.Books.AddBook(ctx, bookstypes.AddBookInput{Title: "Go", Author: "Pike", ISBN: "0123456789"})
	require.NoError(t, err)
	got, err := services.Books.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)

	ticket, err := services.Tickets.CreateTicket(ctx, ticketstypes.CreateTicketInput{
		CustomerName: "Acme", SalesRepresentative: "Rep", TotalAmount: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.TicketNumber)

	result, err := services.Conversions.Calculate(ctx, "add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, result)
}

func TestDialTemporal_Disabled(t *testing.T) {
	_, err := DialTemporal(Config{TemporalDisabled: true}, nil, "test")
	require.Error(t, err)
}

func TestNewCheckout_InlineWithoutSharedStorage(t *testing.T) {
	ctx := context.Background()
	services := NewServices(NewRepositories(nil), nil)
	dialed := false

	checkout, release := NewCheckout(false, func() (client.Client, error) {
		dialed = true
		return &mocks.Client{}, nil
	}, services.Tickets, nil)
	defer release()

	assert.False(t, dialed)
	require.IsType(t, &ticketsworkflows.InlineCheckout{}, checkout)

	ticket, err := services.Tickets.CreateTicket(ctx, ticketstypes.CreateTicketInput{
		CustomerName: "Acme", SalesRepresentative: "Rep", TotalAmount: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	done, err := checkout.CheckoutTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.True(t, done.IsPaid)
}

func TestNewCheckout_InlineWhenTemporalUnreachable(t *testing.T) {
	services := NewServices(NewRepositories(nil), nil)

	checkout, release := NewCheckout(true, func() (client.Client, error) {
		return nil, errors.New("connection refused")
	}, services.Tickets, nil)
	defer release()

	assert.IsType(t, &ticketsworkflows.InlineCheckout{}, checkout)
}

func TestNewCheckout_TemporalWithSharedStorage(t *testing.T) {
	services := NewServices(NewRepositories(nil), nil)
	temporalClient := &mocks.Client{}
	temporalClient.On("Close").Return().Once()

	checkout, release := NewCheckout(true, func() (client.Client, error) {
		return temporalClient, nil
	}, services.Tickets, nil)

	assert.IsType(t, &ticketsworkflows.TemporalCheckout{}, checkout)
	release()
	temporalClient.AssertExpectations(t)
}
