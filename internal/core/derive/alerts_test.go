package derive

import (
	"testing"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
)

func alertsByType(alerts []domain.Alert, typ domain.AlertType) []domain.Alert {
	var out []domain.Alert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestAlertsFullLease(t *testing.T) {
	today := date(2025, time.June, 1)
	alerts := Alerts(leaseExtraction(), "Phoenix Marketcity", today)

	expiry := alertsByType(alerts, domain.AlertLeaseExpiry)
	if len(expiry) != 4 {
		t.Fatalf("lease_expiry alerts = %d, want 4", len(expiry))
	}
	for _, a := range expiry {
		if !a.ReferenceDate.Equal(date(2034, time.January, 31)) {
			t.Fatalf("lease_expiry reference = %v", a.ReferenceDate)
		}
		wantTrigger := a.ReferenceDate.AddDate(0, 0, -a.LeadDays)
		if !a.TriggerDate.Equal(wantTrigger) {
			t.Fatalf("trigger = %v, want reference minus %d days", a.TriggerDate, a.LeadDays)
		}
		wantSeverity := domain.SeverityMedium
		if a.LeadDays <= 30 {
			wantSeverity = domain.SeverityHigh
		}
		if a.Severity != wantSeverity {
			t.Fatalf("lead %d: severity = %s, want %s", a.LeadDays, a.Severity, wantSeverity)
		}
		if a.Status != domain.AlertPending {
			t.Fatalf("status = %s, want pending", a.Status)
		}
	}
	for i := 1; i < len(expiry); i++ {
		if !expiry[i-1].TriggerDate.Before(expiry[i].TriggerDate) {
			t.Fatalf("expected ascending trigger dates, got %v then %v", expiry[i-1].TriggerDate, expiry[i].TriggerDate)
		}
	}

	lockIn := alertsByType(alerts, domain.AlertLockInExpiry)
	if len(lockIn) != 2 {
		t.Fatalf("lock_in_expiry alerts = %d, want 2", len(lockIn))
	}
	if !lockIn[0].ReferenceDate.Equal(date(2028, time.February, 1)) {
		t.Fatalf("lock-in reference = %v, want commencement + 36 months", lockIn[0].ReferenceDate)
	}

	escalation := alertsByType(alerts, domain.AlertEscalation)
	if len(escalation) != 3 {
		t.Fatalf("escalation alerts = %d, want 3", len(escalation))
	}
	if !escalation[0].ReferenceDate.Equal(date(2028, time.March, 18)) {
		t.Fatalf("escalation reference = %v, want 2028-03-18", escalation[0].ReferenceDate)
	}

	// The June 7 rent alert triggers May 31, before today, so only five of the
	// six-month window survive.
	rentDue := alertsByType(alerts, domain.AlertRentDue)
	if len(rentDue) != 5 {
		t.Fatalf("rent_due alerts = %d, want 5", len(rentDue))
	}
	if !rentDue[0].ReferenceDate.Equal(date(2025, time.July, 7)) {
		t.Fatalf("first surviving rent due = %v, want 2025-07-07", rentDue[0].ReferenceDate)
	}

	// Fit-out deadline (2025-03-18) is already past, so both leads drop.
	if got := alertsByType(alerts, domain.AlertFitOutDeadline); len(got) != 0 {
		t.Fatalf("fit_out_deadline alerts = %d, want 0", len(got))
	}
}

func TestAlertsNeverRetroactive(t *testing.T) {
	today := date(2035, time.January, 1)
	alerts := Alerts(leaseExtraction(), "Phoenix Marketcity", today)
	for _, a := range alerts {
		if a.TriggerDate.Before(today) {
			t.Fatalf("retroactive %s alert with trigger %v", a.Type, a.TriggerDate)
		}
	}
	if len(alertsByType(alerts, domain.AlertLeaseExpiry)) != 0 {
		t.Fatalf("expired lease must not produce expiry alerts")
	}
}

func TestAlertsEscalationStepsToNextFuture(t *testing.T) {
	ex := extraction.Extraction{
		"lease_term": map[string]any{"rent_commencement_date": "2024-01-15"},
		"rent":       map[string]any{"escalation_frequency_years": 3.0},
	}
	alerts := Alerts(ex, "Outlet", date(2027, time.June, 1))

	escalation := alertsByType(alerts, domain.AlertEscalation)
	if len(escalation) == 0 {
		t.Fatalf("expected escalation alerts")
	}
	// 2027-01-15 is already past; the next step lands on 2030-01-15.
	if !escalation[0].ReferenceDate.Equal(date(2030, time.January, 15)) {
		t.Fatalf("escalation reference = %v, want 2030-01-15", escalation[0].ReferenceDate)
	}
}

func TestAlertsRentDueDayClamped(t *testing.T) {
	ex := extraction.Extraction{
		"rent": map[string]any{"mglr_payment_day": 31.0},
	}
	alerts := Alerts(ex, "Outlet", date(2025, time.January, 1))

	rentDue := alertsByType(alerts, domain.AlertRentDue)
	if len(rentDue) == 0 {
		t.Fatalf("expected rent due alerts")
	}
	for _, a := range rentDue {
		if a.ReferenceDate.Day() > 28 {
			t.Fatalf("due day %d exceeds ceiling", a.ReferenceDate.Day())
		}
	}
}

func TestAlertsRentDueDayFlooredToFirst(t *testing.T) {
	ex := extraction.Extraction{
		"rent": map[string]any{"mglr_payment_day": 0.0},
	}
	today := date(2025, time.June, 1)
	alerts := Alerts(ex, "Outlet", today)

	rentDue := alertsByType(alerts, domain.AlertRentDue)
	if len(rentDue) == 0 {
		t.Fatalf("expected rent due alerts")
	}
	wantMonth := time.July
	for _, a := range rentDue {
		if a.ReferenceDate.Day() != 1 {
			t.Fatalf("due day = %d, want floor 1", a.ReferenceDate.Day())
		}
		if a.ReferenceDate.Month() != wantMonth {
			t.Fatalf("due month = %s, want %s", a.ReferenceDate.Month(), wantMonth)
		}
		wantMonth++
	}
}

func TestAlertsMissingDatesDropOnlyThatCategory(t *testing.T) {
	ex := extraction.Extraction{
		"lease_term": map[string]any{
			"lease_expiry_date":       "60 days from handover",
			"lease_commencement_date": "2025-02-01",
			"lock_in_months":          24.0,
		},
	}
	alerts := Alerts(ex, "Outlet", date(2025, time.June, 1))

	if got := alertsByType(alerts, domain.AlertLeaseExpiry); len(got) != 0 {
		t.Fatalf("unparsable expiry must not alert, got %d", len(got))
	}
	if got := alertsByType(alerts, domain.AlertLockInExpiry); len(got) != 2 {
		t.Fatalf("lock-in alerts = %d, want 2", len(got))
	}
}
