package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/recordkeeper/internal/app/api"
	platformobservability "github.com/Apurer/recordkeeper/internal/platform/observability"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
	ticketactivities "github.com/Apurer/recordkeeper/internal/platform/temporal/activities/tickets"
	ticketworkflows "github.com/Apurer/recordkeeper/internal/platform/temporal/workflows/tickets"
)

func main() {
	ctx := context.Background()
	const serviceName = "recordkeeper-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
	if db == nil {
		logger.Warn("worker is using an in-memory ticket repository; checkouts will not see tickets created by the API")
	}
	ticketService := api.NewTicketService(api.NewRepositories(db).Tickets, instruments)
	activities := ticketactivities.NewActivities(ticketService)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, ticketworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(ticketworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: ticketworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.MarkPaid, activity.RegisterOptions{Name: ticketactivities.MarkPaidActivityName})
	w.RegisterActivityWithOptions(activities.Complete, activity.RegisterOptions{Name: ticketactivities.CompleteActivityName})

	logger.Info("worker listening", slog.String("taskQueue", ticketworkflows.CheckoutTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
