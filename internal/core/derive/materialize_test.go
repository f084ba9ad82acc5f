package derive

import (
	"testing"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
)

func TestBuildOutletNameFallback(t *testing.T) {
	out := BuildOutlet(extraction.Extraction{
		"parties": map[string]any{"brand_name": "Barista"},
	}, "org-1")
	if out.Name != "Barista" {
		t.Fatalf("name = %q, want brand fallback", out.Name)
	}

	out = BuildOutlet(extraction.Extraction{}, "org-1")
	if out.Name != "New Outlet" {
		t.Fatalf("name = %q, want placeholder", out.Name)
	}
	if out.Status != domain.OutletFitOut {
		t.Fatalf("status = %s, want fit_out", out.Status)
	}
}

func TestBuildOutletEnums(t *testing.T) {
	out := BuildOutlet(extraction.Extraction{
		"premises":  map[string]any{"property_type": "MALL"},
		"franchise": map[string]any{"franchise_model": "fofo"},
	}, "org-1")
	if out.PropertyType == nil || *out.PropertyType != "mall" {
		t.Fatalf("property type = %v", out.PropertyType)
	}
	if out.FranchiseModel == nil || *out.FranchiseModel != "FOFO" {
		t.Fatalf("franchise model = %v", out.FranchiseModel)
	}

	out = BuildOutlet(extraction.Extraction{
		"premises": map[string]any{"property_type": "spaceship"},
	}, "org-1")
	if out.PropertyType != nil {
		t.Fatalf("unknown enum member must stay unset")
	}
}

func TestApplyAgreementSummary(t *testing.T) {
	ag := &domain.Agreement{}
	ApplyAgreementSummary(leaseExtraction(), ag)

	if ag.RentModel == nil || *ag.RentModel != "hybrid_mglr" {
		t.Fatalf("rent model = %v, want hybrid_mglr", ag.RentModel)
	}
	if ag.MonthlyRent == nil || *ag.MonthlyRent != 285000 {
		t.Fatalf("monthly rent = %v", ag.MonthlyRent)
	}
	if ag.RentPerSqft == nil || *ag.RentPerSqft != 95 {
		t.Fatalf("rent per sqft = %v", ag.RentPerSqft)
	}
	if ag.CAMMonthly == nil || *ag.CAMMonthly != 59200 {
		t.Fatalf("cam monthly = %v", ag.CAMMonthly)
	}
	if ag.TotalMonthlyOutflow == nil || *ag.TotalMonthlyOutflow != 344200 {
		t.Fatalf("total outflow = %v, want rent + cam", ag.TotalMonthlyOutflow)
	}
	if ag.SecurityDeposit == nil || *ag.SecurityDeposit != 1710000 {
		t.Fatalf("security deposit = %v", ag.SecurityDeposit)
	}
	if ag.LockInEndDate == nil || !ag.LockInEndDate.Equal(date(2028, time.February, 1)) {
		t.Fatalf("lock-in end = %v, want 2028-02-01", ag.LockInEndDate)
	}
	if ag.ExpiryDate == nil || !ag.ExpiryDate.Equal(date(2034, time.January, 31)) {
		t.Fatalf("expiry = %v", ag.ExpiryDate)
	}
}

func TestApplyAgreementSummaryRentModelEnum(t *testing.T) {
	ag := &domain.Agreement{}
	ApplyAgreementSummary(extraction.Extraction{
		"rent": map[string]any{"rent_model": "Fixed"},
	}, ag)
	if ag.RentModel == nil || *ag.RentModel != "fixed" {
		t.Fatalf("rent model = %v, want canonical fixed", ag.RentModel)
	}

	ag = &domain.Agreement{}
	ApplyAgreementSummary(extraction.Extraction{
		"rent": map[string]any{"rent_model": "barter"},
	}, ag)
	if ag.RentModel != nil {
		t.Fatalf("unknown rent model must stay unset, got %q", *ag.RentModel)
	}
}

func TestApplyAgreementSummaryNoOutflowWhenEmpty(t *testing.T) {
	ag := &domain.Agreement{}
	ApplyAgreementSummary(extraction.Extraction{}, ag)
	if ag.TotalMonthlyOutflow != nil {
		t.Fatalf("total outflow should stay unset, got %v", *ag.TotalMonthlyOutflow)
	}
	if ag.MonthlyRent != nil || ag.CAMMonthly != nil {
		t.Fatalf("empty extraction must not set amounts")
	}
}
