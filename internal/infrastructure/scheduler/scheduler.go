// Package scheduler runs the rolling payment-period generation on a cron
// schedule inside the worker process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/grospace/lease-engine/internal/core/ports"
	"github.com/grospace/lease-engine/internal/observability/metrics"
)

const runTimeout = 5 * time.Minute

type PaymentScheduler struct {
	schedule       string
	monthsAhead    int
	organizationID string
	service        string

	payments ports.PaymentGenerator
	metrics  *metrics.WorkerMetrics

	cron *cron.Cron
}

func NewPaymentScheduler(
	schedule string,
	monthsAhead int,
	organizationID string,
	payments ports.PaymentGenerator,
	workerMetrics *metrics.WorkerMetrics,
) *PaymentScheduler {
	return &PaymentScheduler{
		schedule:       schedule,
		monthsAhead:    monthsAhead,
		organizationID: organizationID,
		service:        "worker",
		payments:       payments,
		metrics:        workerMetrics,
		cron:           cron.New(),
	}
}

// Start registers the job and runs the cron loop until ctx is canceled.
func (s *PaymentScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() { s.run(ctx) })
	if err != nil {
		return fmt.Errorf("register payment generation job: %w", err)
	}

	s.cron.Start()
	slog.Info("payment_scheduler_started", "schedule", s.schedule, "months_ahead", s.monthsAhead)

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}

func (s *PaymentScheduler) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	created, err := s.payments.Generate(runCtx, s.monthsAhead, s.organizationID)
	if s.metrics != nil {
		s.metrics.FinishPaymentRun(s.service, created, err)
	}
	if err != nil {
		slog.Error("payment_generation_run_failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	slog.Info("payment_generation_run_finished", "created", created, "duration_ms", time.Since(start).Milliseconds())
}
