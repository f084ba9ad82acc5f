package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func retryOnlyConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	}
}

func TestExecuteRetriesRetryableFailure(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig())

	attempts := 0
	errFlaky := errors.New("flaky upstream")
	err := exec.Execute(context.Background(), "gemini.classify", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errFlaky
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{
			Retryable:     errors.Is(err, errFlaky),
			RecordFailure: true,
		}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteStopsOnPermanentFailure(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig())

	attempts := 0
	errPermanent := errors.New("bad request")
	err := exec.Execute(context.Background(), "gemini.classify", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errUpstream := errors.New("upstream down")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "gemini.extract_fields", func(context.Context) error {
			return errUpstream
		}, classifier)
		if !errors.Is(err, errUpstream) {
			t.Fatalf("iteration %d: expected upstream error, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "gemini.extract_fields", func(context.Context) error {
		t.Fatalf("open circuit must not invoke the operation")
		return nil
	}, classifier)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected gobreaker open state, got %v", err)
	}
}

func TestBreakersAreScopedPerOperation(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errUpstream := errors.New("upstream down")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		_ = exec.Execute(context.Background(), "nats.publish", func(context.Context) error {
			return errUpstream
		}, classifier)
	}

	err := exec.Execute(context.Background(), "gemini.answer", func(context.Context) error {
		return nil
	}, classifier)
	if err != nil {
		t.Fatalf("unrelated operation must not share the tripped breaker: %v", err)
	}
}

func TestExecuteStopsWhenContextCanceled(t *testing.T) {
	exec := NewExecutor(retryOnlyConfig())

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	errFlaky := errors.New("flaky upstream")
	err := exec.Execute(ctx, "gemini.classify", func(context.Context) error {
		attempts++
		cancel()
		return errFlaky
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if !errors.Is(err, errFlaky) {
		t.Fatalf("expected last attempt error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want no retry after cancel", attempts)
	}
}
