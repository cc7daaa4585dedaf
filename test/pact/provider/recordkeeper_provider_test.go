//go:build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	recordserver "github.com/Apurer/recordkeeper/go"
	"github.com/Apurer/recordkeeper/internal/app/api"
	bookstypes "github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
	ticketstypes "github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	pacttest "github.com/Apurer/recordkeeper/test/pact"
)

func TestRecordkeeperProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	fresh := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset()
		return nil, nil
	}
	stateHandlers := models.StateHandlers{
		pacttest.StateBooksBaseline: fresh,
		pacttest.StateBookMissing:   fresh,
		pacttest.StateTicketMissing: fresh,
		pacttest.StateBookExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedBook(t)
			}
			return nil, nil
		},
		pacttest.StateTicketCancelled: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedCancelledTicket(t)
			}
			return nil, nil
		},
	}

	err := pactprovider.NewVerifier().VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves the real router over in-memory repositories. Every reset swaps
// in fresh stores, so seeded records get predictable ids.
type contractProviderApp struct {
	mu       sync.RWMutex
	services api.Services
	router   http.Handler
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	services := api.NewServices(api.NewRepositories(nil), nil)
	router := recordserver.NewRouter(recordserver.ApiHandleFunctions{
		BookAPI:       recordserver.NewBookAPI(services.Books),
		StudentAPI:    recordserver.NewStudentAPI(services.Students),
		TicketAPI:     recordserver.NewTicketAPI(services.Tickets, ticketsworkflows.NewInlineCheckout(services.Tickets)),
		ProductAPI:    recordserver.NewProductAPI(services.Products),
		ConversionAPI: recordserver.NewConversionAPI(services.Conversions),
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.services = services
	a.router = router
}

func (a *contractProviderApp) current() api.Services {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.services
}

func (a *contractProviderApp) seedBook(t testing.TB) {
	t.Helper()
	book, err := a.current().Books.AddBook(context.Background(), bookstypes.AddBookInput{
		Title:         "The Great Gatsby",
		Author:        "F. Scott Fitzgerald",
		ISBN:          pacttest.ExistingBookISBN,
		Price:         decimal.RequireFromString("14.99"),
		Rating:        4.5,
		StockQuantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingBookID, book.ID)
}

func (a *contractProviderApp) seedCancelledTicket(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	tickets := a.current().Tickets
	ticket, err := tickets.CreateTicket(ctx, ticketstypes.CreateTicketInput{
		CustomerName:        "Acme Corp",
		SalesRepresentative: "Dana",
		TotalAmount:         decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.CancelledTicketID, ticket.ID)
	ok, err := tickets.CancelTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, ok)
}
