package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grospace/lease-engine/internal/core/derive"
	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
	"github.com/grospace/lease-engine/internal/core/ports"
)

// ConfirmAgreementUseCase runs confirm-and-activate: it materializes the
// outlet and agreement summary from the reviewed extraction, derives the
// obligation set and the staged alert schedule, and records the action in the
// activity log. The whole step is deterministic and performs no LLM calls.
type ConfirmAgreementUseCase struct {
	agreements  ports.AgreementRepository
	outlets     ports.OutletRepository
	obligations ports.ObligationRepository
	alerts      ports.AlertRepository
	activity    ports.ActivityLog

	cfg        derive.Config
	defaultOrg string
	now        func() time.Time
}

func NewConfirmAgreementUseCase(
	agreements ports.AgreementRepository,
	outlets ports.OutletRepository,
	obligations ports.ObligationRepository,
	alerts ports.AlertRepository,
	activity ports.ActivityLog,
	cfg derive.Config,
	defaultOrg string,
) *ConfirmAgreementUseCase {
	return &ConfirmAgreementUseCase{
		agreements:  agreements,
		outlets:     outlets,
		obligations: obligations,
		alerts:      alerts,
		activity:    activity,
		cfg:         cfg,
		defaultOrg:  defaultOrg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock fixes the engine's notion of "today". Tests use it; production
// wiring leaves the default.
func (uc *ConfirmAgreementUseCase) WithClock(now func() time.Time) *ConfirmAgreementUseCase {
	uc.now = now
	return uc
}

func (uc *ConfirmAgreementUseCase) Confirm(ctx context.Context, agreementID, organizationID string) (*ports.ConfirmResult, error) {
	ag, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("fetch agreement by id: %w", err)
	}
	if ag.Status == domain.AgreementConfirmed {
		return nil, domain.WrapError(domain.ErrInvalidInput, "confirm agreement",
			errors.New("agreement is already confirmed"))
	}
	if len(ag.Extraction) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "confirm agreement",
			errors.New("agreement has no extraction to confirm"))
	}
	if organizationID == "" {
		organizationID = uc.defaultOrg
	}
	if ag.OrganizationID == "" {
		ag.OrganizationID = organizationID
	}

	ex := extraction.Extraction(ag.Extraction)
	now := uc.now()

	outlet, err := uc.createOutlet(ctx, ex, organizationID, now)
	if err != nil {
		return nil, err
	}

	if err := uc.confirmAgreement(ctx, ex, ag, outlet.ID, now); err != nil {
		return nil, err
	}

	obligationCount, err := uc.createObligations(ctx, ex, ag, outlet, now)
	if err != nil {
		return nil, err
	}

	alertCount, err := uc.createAlerts(ctx, ex, ag, outlet, now)
	if err != nil {
		return nil, err
	}

	result := &ports.ConfirmResult{
		AgreementID:        ag.ID,
		OutletID:           outlet.ID,
		ObligationsCreated: obligationCount,
		AlertsCreated:      alertCount,
	}

	if err := uc.recordActivity(ctx, ag, result, now); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ConfirmAgreementUseCase) createOutlet(ctx context.Context, ex extraction.Extraction, organizationID string, now time.Time) (*domain.Outlet, error) {
	outlet := derive.BuildOutlet(ex, organizationID)
	outlet.ID = uuid.NewString()
	outlet.CreatedAt = now
	outlet.UpdatedAt = now

	if err := uc.outlets.Create(ctx, &outlet); err != nil {
		return nil, fmt.Errorf("create outlet: %w", err)
	}
	return &outlet, nil
}

func (uc *ConfirmAgreementUseCase) confirmAgreement(ctx context.Context, ex extraction.Extraction, ag *domain.Agreement, outletID string, now time.Time) error {
	derive.ApplyAgreementSummary(ex, ag)
	ag.OutletID = &outletID
	ag.Status = domain.AgreementConfirmed
	ag.UpdatedAt = now

	if err := uc.agreements.Confirm(ctx, ag); err != nil {
		return fmt.Errorf("confirm agreement: %w", err)
	}
	return nil
}

func (uc *ConfirmAgreementUseCase) createObligations(ctx context.Context, ex extraction.Extraction, ag *domain.Agreement, outlet *domain.Outlet, now time.Time) (int, error) {
	created := 0
	for _, ob := range derive.Obligations(ex, uc.cfg) {
		ob.ID = uuid.NewString()
		ob.OrganizationID = ag.OrganizationID
		ob.AgreementID = ag.ID
		ob.OutletID = outlet.ID
		ob.CreatedAt = now
		ob.UpdatedAt = now

		if err := uc.obligations.Create(ctx, &ob); err != nil {
			return created, fmt.Errorf("create %s obligation: %w", ob.Type, err)
		}
		created++
	}
	return created, nil
}

func (uc *ConfirmAgreementUseCase) createAlerts(ctx context.Context, ex extraction.Extraction, ag *domain.Agreement, outlet *domain.Outlet, now time.Time) (int, error) {
	created := 0
	for _, alert := range derive.Alerts(ex, outlet.Name, now) {
		alert.ID = uuid.NewString()
		alert.OrganizationID = ag.OrganizationID
		alert.OutletID = outlet.ID
		agreementID := ag.ID
		alert.AgreementID = &agreementID
		alert.CreatedAt = now
		alert.UpdatedAt = now

		if err := uc.alerts.Create(ctx, &alert); err != nil {
			return created, fmt.Errorf("create %s alert: %w", alert.Type, err)
		}
		created++
	}
	return created, nil
}

func (uc *ConfirmAgreementUseCase) recordActivity(ctx context.Context, ag *domain.Agreement, result *ports.ConfirmResult, now time.Time) error {
	entry := &domain.ActivityEntry{
		ID:             uuid.NewString(),
		OrganizationID: ag.OrganizationID,
		Action:         "agreement_confirmed",
		EntityKind:     "agreement",
		EntityID:       ag.ID,
		Detail: map[string]any{
			"outlet_id":           result.OutletID,
			"obligations_created": result.ObligationsCreated,
			"alerts_created":      result.AlertsCreated,
		},
		CreatedAt: now,
	}
	if err := uc.activity.Record(ctx, entry); err != nil {
		return fmt.Errorf("record confirm activity: %w", err)
	}
	return nil
}
