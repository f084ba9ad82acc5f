package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grospace/lease-engine/internal/core/derive"
	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
)

const defaultMonthsAhead = 3

// GeneratePaymentsUseCase expands active monthly obligations into concrete
// payment periods for a rolling horizon. Re-running it for the same window is
// a no-op: existence is checked per (obligation, year, month) and the insert
// itself is conditional, so concurrent runs cannot duplicate a period.
type GeneratePaymentsUseCase struct {
	obligations ports.ObligationRepository
	periods     ports.PaymentPeriodRepository
	activity    ports.ActivityLog
	now         func() time.Time
}

func NewGeneratePaymentsUseCase(
	obligations ports.ObligationRepository,
	periods ports.PaymentPeriodRepository,
	activity ports.ActivityLog,
) *GeneratePaymentsUseCase {
	return &GeneratePaymentsUseCase{
		obligations: obligations,
		periods:     periods,
		activity:    activity,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *GeneratePaymentsUseCase) WithClock(now func() time.Time) *GeneratePaymentsUseCase {
	uc.now = now
	return uc
}

func (uc *GeneratePaymentsUseCase) Generate(ctx context.Context, monthsAhead int, organizationID string) (int, error) {
	if monthsAhead <= 0 {
		monthsAhead = defaultMonthsAhead
	}
	today := uc.now()

	obligations, err := uc.obligations.ListActiveMonthly(ctx, organizationID)
	if err != nil {
		return 0, fmt.Errorf("list active obligations: %w", err)
	}

	created := 0
	for _, ob := range obligations {
		n, err := uc.generateForObligation(ctx, ob, monthsAhead, today)
		if err != nil {
			return created, err
		}
		created += n
	}

	if created > 0 {
		if err := uc.recordActivity(ctx, organizationID, created, today); err != nil {
			return created, err
		}
	}
	return created, nil
}

func (uc *GeneratePaymentsUseCase) generateForObligation(ctx context.Context, ob domain.Obligation, monthsAhead int, today time.Time) (int, error) {
	created := 0
	for offset := 0; offset < monthsAhead; offset++ {
		year, month := derive.TargetPeriod(today, offset)

		period, ok := derive.BuildPeriod(ob, year, month, today)
		if !ok {
			continue
		}

		exists, err := uc.periods.Exists(ctx, ob.ID, year, month)
		if err != nil {
			return created, fmt.Errorf("check period existence: %w", err)
		}
		if exists {
			continue
		}

		period.ID = uuid.NewString()
		period.CreatedAt = today
		period.UpdatedAt = today

		inserted, err := uc.periods.Create(ctx, &period)
		if err != nil {
			return created, fmt.Errorf("create payment period %d-%02d for obligation %s: %w", year, month, ob.ID, err)
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

func (uc *GeneratePaymentsUseCase) recordActivity(ctx context.Context, organizationID string, created int, now time.Time) error {
	entry := &domain.ActivityEntry{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Action:         "payment_periods_generated",
		EntityKind:     "payment_period",
		EntityID:       "",
		Detail:         map[string]any{"created": created},
		CreatedAt:      now,
	}
	if err := uc.activity.Record(ctx, entry); err != nil {
		return fmt.Errorf("record generation activity: %w", err)
	}
	return nil
}
