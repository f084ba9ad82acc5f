package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grospace/lease-engine/internal/bootstrap"
	"github.com/grospace/lease-engine/internal/config"
	"github.com/grospace/lease-engine/internal/infrastructure/scheduler"
	"github.com/grospace/lease-engine/internal/observability/logging"
	"github.com/grospace/lease-engine/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server_error", "error", err)
		}
	}()

	paymentScheduler := scheduler.NewPaymentScheduler(
		cfg.PaymentCronSchedule,
		cfg.PaymentMonthsAhead,
		cfg.DefaultOrganizationID,
		app.PaymentsUC,
		workerMetrics,
	)
	go func() {
		if err := paymentScheduler.Start(ctx); err != nil {
			slog.Error("payment_scheduler_error", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentUploaded(ctx, func(handlerCtx context.Context, agreementID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if ag, lookupErr := app.Agreements.GetByID(processCtx, agreementID); lookupErr == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(ag.CreatedAt))
		}

		workerMetrics.StartDocument()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, agreementID)
		workerMetrics.FinishDocument("worker", time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("worker_metrics_shutdown_error", "error", err)
	}
}
