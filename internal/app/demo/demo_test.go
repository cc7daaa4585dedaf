package demo

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/recordkeeper/internal/app/api"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
)

func TestRun_InMemoryTranscript(t *testing.T) {
	var out bytes.Buffer
	services := api.NewServices(api.NewRepositories(nil), nil)

	require.NoError(t, Run(context.Background(), &out, services, nil))

	transcript := out.String()
	assert.Contains(t, transcript, "The Great Gatsby by F. Scott Fitzgerald - Rating: 4.5, Price: $14.99")
	assert.Contains(t, transcript, "Found: The Great Gatsby by F. Scott Fitzgerald")
	assert.Contains(t, transcript, "The Great Gatsby by F. Scott Fitzgerald - Stock: 50")
	assert.NotContains(t, transcript[bytes.Index(out.Bytes(), []byte("Remaining available books")):], "To Kill a Mockingbird")
	assert.Contains(t, transcript, "Grace Hopper - GPA: 3.90")
	assert.Contains(t, transcript, "is Completed, paid: true")
	assert.Contains(t, transcript, "Sales today: $92.20")
	assert.Contains(t, transcript, "Desk Lamp - $35.99")
	assert.Contains(t, transcript, "25.00 C = 77.00 F")
	assert.Contains(t, transcript, "6 x 7 = 42")
}

func TestRun_WithCheckoutOrchestrator(t *testing.T) {
	var out bytes.Buffer
	services := api.NewServices(api.NewRepositories(nil), nil)

	require.NoError(t, Run(context.Background(), &out, services, ticketsworkflows.NewInlineCheckout(services.Tickets)))
	assert.Contains(t, out.String(), "is Completed, paid: true")
}

func TestRun_StopsOnFirstFailure(t *testing.T) {
	var out bytes.Buffer
	services := api.NewServices(api.NewRepositories(nil), nil)
	ctx := context.Background()
	require.NoError(t, Run(ctx, &out, services, nil))

	err := Run(ctx, &out, services, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The Great Gatsby")
}
