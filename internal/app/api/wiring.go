package api

import (
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	booksmemory "github.com/Apurer/recordkeeper/internal/domains/books/adapters/memory"
	booksobs "github.com/Apurer/recordkeeper/internal/domains/books/adapters/observability"
	bookspostgres "github.com/Apurer/recordkeeper/internal/domains/books/adapters/persistence/postgres"
	booksapp "github.com/Apurer/recordkeeper/internal/domains/books/application"
	booksports "github.com/Apurer/recordkeeper/internal/domains/books/ports"
	conversionsapp "github.com/Apurer/recordkeeper/internal/domains/conversions/application"
	conversionsports "github.com/Apurer/recordkeeper/internal/domains/conversions/ports"
	productsmemory "github.com/Apurer/recordkeeper/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/recordkeeper/internal/domains/products/adapters/observability"
	productspostgres "github.com/Apurer/recordkeeper/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/Apurer/recordkeeper/internal/domains/products/application"
	productsports "github.com/Apurer/recordkeeper/internal/domains/products/ports"
	studentsmemory "github.com/Apurer/recordkeeper/internal/domains/students/adapters/memory"
	studentsobs "github.com/Apurer/recordkeeper/internal/domains/students/adapters/observability"
	studentspostgres "github.com/Apurer/recordkeeper/internal/domains/students/adapters/persistence/postgres"
	studentsapp "github.com/Apurer/recordkeeper/internal/domains/students/application"
	studentsports "github.com/Apurer/recordkeeper/internal/domains/students/ports"
	ticketsmemory "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/memory"
	ticketsobs "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/observability"
	ticketspostgres "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/persistence/postgres"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
	ticketsapp "github.com/Apurer/recordkeeper/internal/domains/tickets/application"
	ticketsports "github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	platformobservability "github.com/Apurer/recordkeeper/internal/platform/observability"
)

// Repositories holds one repository per bounded context.
type Repositories struct {
	Books    booksports.Repository
	Students studentsports.Repository
	Tickets  ticketsports.Repository
	Products productsports.Repository
}

// NewRepositories returns PostgreSQL repositories when db is set and in-memory ones otherwise.
func NewRepositories(db *gorm.DB) Repositories {
	if db == nil {
		return Repositories{
			Books:    booksmemory.NewRepository(),
			Students: studentsmemory.NewRepository(),
			Tickets:  ticketsmemory.NewRepository(),
			Products: productsmemory.NewRepository(),
		}
	}
	return Repositories{
		Books:    bookspostgres.NewRepository(db),
		Students: studentspostgres.NewRepository(db),
		Tickets:  ticketspostgres.NewRepository(db),
		Products: productspostgres.NewRepository(db),
	}
}

// Services holds the instrumented use cases of every bounded context.
type Services struct {
	Books       booksports.Service
	Students    studentsports.Service
	Tickets     ticketsports.Service
	Products    productsports.Service
	Conversions conversionsports.Service
}

// NewServices builds the core services over repos and wraps each in its observability decorator.
func NewServices(repos Repositories, instruments *platformobservability.Instruments) Services {
	logger := effectiveLogger(instruments)
	return Services{
		Books: booksobs.New(booksapp.NewService(repos.Books),
			booksobs.WithLogger(logger),
			booksobs.WithTracer(instruments.Tracer("internal.books.application")),
			booksobs.WithMeter(instruments.Meter("internal.books.application")),
		),
		Students: studentsobs.New(studentsapp.NewService(repos.Students),
			studentsobs.WithLogger(logger),
			studentsobs.WithTracer(instruments.Tracer("internal.students.application")),
			studentsobs.WithMeter(instruments.Meter("internal.students.application")),
		),
		Tickets: NewTicketService(repos.Tickets, instruments),
		Products: productsobs.New(productsapp.NewService(repos.Products),
			productsobs.WithLogger(logger),
			productsobs.WithTracer(instruments.Tracer("internal.products.application")),
			productsobs.WithMeter(instruments.Meter("internal.products.application")),
		),
		Conversions: conversionsapp.NewService(),
	}
}

// NewTicketService is the instrumented ticket service, shared with the checkout worker.
func NewTicketService(repo ticketsports.Repository, instruments *platformobservability.Instruments) ticketsports.Service {
	return ticketsobs.New(ticketsapp.NewService(repo),
		ticketsobs.WithLogger(effectiveLogger(instruments)),
		ticketsobs.WithTracer(instruments.Tracer("internal.tickets.application")),
		ticketsobs.WithMeter(instruments.Meter("internal.tickets.application")),
	)
}

// DialTemporal connects a traced Temporal client, or fails when Temporal is disabled.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// NewCheckout picks the checkout orchestrator. Checkout runs on Temporal only when the worker
// shares storage with the API; in-memory storage lives in one process, so checkout stays inline.
// The returned func releases the Temporal client, if any.
func NewCheckout(sharedStorage bool, dial func() (client.Client, error), tickets ticketsports.Service, logger *slog.Logger) (ticketsports.CheckoutOrchestrator, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	inline := ticketsworkflows.NewInlineCheckout(tickets)
	if !sharedStorage {
		logger.Warn("no shared database configured, running checkout inline")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	return ticketsworkflows.NewTemporalCheckout(temporalClient, tickets), temporalClient.Close
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
