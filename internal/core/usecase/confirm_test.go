package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/grospace/lease-engine/internal/core/derive"
	"github.com/grospace/lease-engine/internal/core/domain"
)

func reviewedLease() *domain.Agreement {
	return &domain.Agreement{
		ID:     "ag-1",
		Type:   domain.DocLeaseLOI,
		Status: domain.AgreementReview,
		Extraction: map[string]any{
			"lease_term": map[string]any{
				"lease_commencement_date": "2025-02-01",
				"rent_commencement_date":  "2025-03-18",
				"lease_expiry_date":       "2034-01-31",
				"lock_in_months":          36.0,
			},
			"rent": map[string]any{
				"rent_model": "hybrid_mglr",
				"rent_schedule": []any{
					map[string]any{"mglr_monthly": 285000.0, "mglr_per_sqft": 95.0},
				},
				"mglr_payment_day":           7.0,
				"escalation_percentage":      15.0,
				"escalation_frequency_years": 3.0,
			},
			"charges": map[string]any{
				"cam_monthly": 59200.0,
			},
			"deposits": map[string]any{
				"security_deposit_amount": 1710000.0,
			},
			"premises": map[string]any{
				"property_name": "Phoenix Marketcity",
			},
		},
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
}

func TestConfirmCreatesEverything(t *testing.T) {
	repo := &agreementRepoFake{agreement: reviewedLease()}
	outlets := &outletRepoFake{}
	obligations := &obligationRepoFake{}
	alerts := &alertRepoFake{}
	activity := &activityLogFake{}

	uc := NewConfirmAgreementUseCase(repo, outlets, obligations, alerts, activity, derive.Config{}, "default-org").
		WithClock(fixedClock())

	result, err := uc.Confirm(context.Background(), "ag-1", "")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if len(outlets.created) != 1 {
		t.Fatalf("outlets created = %d, want 1", len(outlets.created))
	}
	outlet := outlets.created[0]
	if outlet.Name != "Phoenix Marketcity" {
		t.Fatalf("outlet name = %q", outlet.Name)
	}
	if outlet.OrganizationID != "default-org" {
		t.Fatalf("outlet org = %q, want default fallback", outlet.OrganizationID)
	}
	if result.OutletID != outlet.ID {
		t.Fatalf("result outlet id mismatch")
	}

	// rent, cam and security deposit derive from this payload.
	if result.ObligationsCreated != 3 || len(obligations.created) != 3 {
		t.Fatalf("obligations created = %d/%d, want 3", result.ObligationsCreated, len(obligations.created))
	}
	for _, ob := range obligations.created {
		if ob.AgreementID != "ag-1" || ob.OutletID != outlet.ID {
			t.Fatalf("obligation ownership not stamped: %+v", ob)
		}
		if ob.ID == "" {
			t.Fatalf("obligation id not assigned")
		}
	}

	// 4 lease expiry + 2 lock-in + 3 escalation + 5 surviving rent due.
	if result.AlertsCreated != 14 || len(alerts.created) != 14 {
		t.Fatalf("alerts created = %d/%d, want 14", result.AlertsCreated, len(alerts.created))
	}
	for _, a := range alerts.created {
		if a.AgreementID == nil || *a.AgreementID != "ag-1" {
			t.Fatalf("alert agreement not stamped: %+v", a)
		}
	}

	if repo.confirmed == nil {
		t.Fatalf("agreement confirm not persisted")
	}
	if repo.confirmed.Status != domain.AgreementConfirmed {
		t.Fatalf("status = %s, want confirmed", repo.confirmed.Status)
	}
	if repo.confirmed.RentModel == nil || *repo.confirmed.RentModel != "hybrid_mglr" {
		t.Fatalf("rent model = %v, want hybrid_mglr", repo.confirmed.RentModel)
	}
	if repo.confirmed.TotalMonthlyOutflow == nil || *repo.confirmed.TotalMonthlyOutflow != 344200 {
		t.Fatalf("total outflow = %v, want 344200", repo.confirmed.TotalMonthlyOutflow)
	}
	if repo.confirmed.LockInEndDate == nil || !repo.confirmed.LockInEndDate.Equal(time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("lock-in end = %v", repo.confirmed.LockInEndDate)
	}

	if len(activity.entries) != 1 {
		t.Fatalf("activity entries = %d, want 1", len(activity.entries))
	}
	if activity.entries[0].Action != "agreement_confirmed" {
		t.Fatalf("activity action = %q", activity.entries[0].Action)
	}
}

func TestConfirmRejectsAlreadyConfirmed(t *testing.T) {
	ag := reviewedLease()
	ag.Status = domain.AgreementConfirmed
	repo := &agreementRepoFake{agreement: ag}

	uc := NewConfirmAgreementUseCase(repo, &outletRepoFake{}, &obligationRepoFake{}, &alertRepoFake{}, &activityLogFake{}, derive.Config{}, "default-org")

	_, err := uc.Confirm(context.Background(), "ag-1", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestConfirmRejectsEmptyExtraction(t *testing.T) {
	ag := reviewedLease()
	ag.Extraction = nil
	repo := &agreementRepoFake{agreement: ag}

	uc := NewConfirmAgreementUseCase(repo, &outletRepoFake{}, &obligationRepoFake{}, &alertRepoFake{}, &activityLogFake{}, derive.Config{}, "default-org")

	if _, err := uc.Confirm(context.Background(), "ag-1", ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestConfirmExplicitOrganizationWins(t *testing.T) {
	repo := &agreementRepoFake{agreement: reviewedLease()}
	outlets := &outletRepoFake{}

	uc := NewConfirmAgreementUseCase(repo, outlets, &obligationRepoFake{}, &alertRepoFake{}, &activityLogFake{}, derive.Config{}, "default-org").
		WithClock(fixedClock())

	if _, err := uc.Confirm(context.Background(), "ag-1", "org-42"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if outlets.created[0].OrganizationID != "org-42" {
		t.Fatalf("outlet org = %q, want org-42", outlets.created[0].OrganizationID)
	}
}
