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

	httpadapter "github.com/grospace/lease-engine/internal/adapters/http"
	"github.com/grospace/lease-engine/internal/bootstrap"
	"github.com/grospace/lease-engine/internal/config"
	"github.com/grospace/lease-engine/internal/observability/logging"
	"github.com/grospace/lease-engine/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	serverMetrics := metrics.NewHTTPServerMetrics("api")
	app.SetLLMObserver(func(operation string, duration time.Duration, err error) {
		serverMetrics.RecordLLMCall("api", operation, duration, err)
	})
	router := httpadapter.NewRouter(cfg, httpadapter.Deps{
		Ingest:     app.UploadUC,
		Confirm:    app.ConfirmUC,
		Payments:   app.PaymentsUC,
		QA:         app.QAUC,
		Risks:      app.RisksUC,
		Exporter:   app.Exporter,
		Classifier: app.Classifier,
		Agreements: app.Agreements,
		Metrics:    serverMetrics,
	}).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}
