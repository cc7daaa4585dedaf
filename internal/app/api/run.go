package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	recordserver "github.com/Apurer/recordkeeper/go"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
	"github.com/Apurer/recordkeeper/internal/platform/migrations"
	platformobservability "github.com/Apurer/recordkeeper/internal/platform/observability"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

const serviceName = "recordkeeper-api"

// Run boots the HTTP API with observability, repositories and the checkout workflow wired,
// and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	services := NewServices(NewRepositories(db), instruments)

	checkout, closeCheckout := NewCheckout(db != nil, func() (client.Client, error) {
		return DialTemporal(cfg, instruments, "temporal-client")
	}, services.Tickets, logger)
	defer closeCheckout()
	if _, ok := checkout.(*ticketsworkflows.TemporalCheckout); ok {
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := recordserver.NewRouter(recordserver.ApiHandleFunctions{
		BookAPI:       recordserver.NewBookAPI(services.Books),
		StudentAPI:    recordserver.NewStudentAPI(services.Students),
		TicketAPI:     recordserver.NewTicketAPI(services.Tickets, checkout),
		ProductAPI:    recordserver.NewProductAPI(services.Products),
		ConversionAPI: recordserver.NewConversionAPI(services.Conversions),
	},
		otelgin.Middleware(serviceName),
		recordserver.RequestLogger(logger),
		recordserver.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	return serve(ctx, logger, &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

func serve(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("recordkeeper API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("recordkeeper API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down recordkeeper API")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
