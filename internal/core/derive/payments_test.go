package derive

import (
	"testing"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
)

func monthlyObligation(start, end time.Time, dueDay int, amount float64) domain.Obligation {
	day := dueDay
	return domain.Obligation{
		ID:            "ob-1",
		Type:          domain.ObligationRent,
		Frequency:     domain.FrequencyMonthly,
		Amount:        &amount,
		DueDayOfMonth: &day,
		StartDate:     &start,
		EndDate:       &end,
		Active:        true,
	}
}

func TestTargetPeriodRollsOverYear(t *testing.T) {
	year, month := TargetPeriod(date(2025, time.November, 20), 2)
	if year != 2026 || month != 1 {
		t.Fatalf("TargetPeriod = %d-%02d, want 2026-01", year, month)
	}
}

func TestInWindowMonthGranularity(t *testing.T) {
	ob := monthlyObligation(date(2025, time.March, 18), date(2034, time.January, 31), 7, 285000)

	// March 2025 is in-window even though the due day precedes the start day.
	if !InWindow(ob, 2025, 3) {
		t.Fatalf("start month should be in window")
	}
	if InWindow(ob, 2025, 2) {
		t.Fatalf("month before start should be out of window")
	}
	if !InWindow(ob, 2034, 1) {
		t.Fatalf("end month should be in window")
	}
	if InWindow(ob, 2034, 2) {
		t.Fatalf("month after end should be out of window")
	}
}

func TestInWindowOpenEnded(t *testing.T) {
	ob := domain.Obligation{Frequency: domain.FrequencyMonthly, Active: true}
	if !InWindow(ob, 1999, 1) || !InWindow(ob, 2099, 12) {
		t.Fatalf("open-ended window should never exclude")
	}
}

func TestBuildPeriodStatuses(t *testing.T) {
	ob := monthlyObligation(date(2025, time.January, 1), date(2030, time.January, 1), 7, 285000)
	today := date(2025, time.June, 10)

	// Due day in the current month is already past.
	p, ok := BuildPeriod(ob, 2025, 6, today)
	if !ok {
		t.Fatalf("expected period")
	}
	if p.Status != domain.PaymentOverdue {
		t.Fatalf("status = %s, want overdue", p.Status)
	}
	if p.DueAmount == nil || *p.DueAmount != 285000 {
		t.Fatalf("due amount = %v", p.DueAmount)
	}
	if !p.DueDate.Equal(date(2025, time.June, 7)) {
		t.Fatalf("due date = %v", p.DueDate)
	}

	// Within seven days of today.
	ob2 := monthlyObligation(date(2025, time.January, 1), date(2030, time.January, 1), 15, 285000)
	p, ok = BuildPeriod(ob2, 2025, 6, today)
	if !ok || p.Status != domain.PaymentDue {
		t.Fatalf("status = %s, want due", p.Status)
	}

	// Next month is upcoming.
	p, ok = BuildPeriod(ob, 2025, 7, today)
	if !ok || p.Status != domain.PaymentUpcoming {
		t.Fatalf("status = %s, want upcoming", p.Status)
	}
}

func TestBuildPeriodClampsDueDay(t *testing.T) {
	ob := monthlyObligation(date(2025, time.January, 1), date(2030, time.January, 1), 31, 1000)
	p, ok := BuildPeriod(ob, 2025, 2, date(2025, time.January, 1))
	if !ok {
		t.Fatalf("expected period")
	}
	if p.DueDate.Day() != 28 {
		t.Fatalf("due day = %d, want 28", p.DueDate.Day())
	}
}

func TestBuildPeriodFloorsDueDay(t *testing.T) {
	ob := monthlyObligation(date(2025, time.January, 1), date(2030, time.January, 1), 0, 1000)
	p, ok := BuildPeriod(ob, 2025, 7, date(2025, time.June, 1))
	if !ok {
		t.Fatalf("expected period")
	}
	// Day zero would normalize into the previous month; the floor keeps the
	// due date inside its nominal period.
	if !p.DueDate.Equal(date(2025, time.July, 1)) {
		t.Fatalf("due date = %v, want 2025-07-01", p.DueDate)
	}
	if p.PeriodYear != 2025 || p.PeriodMonth != 7 {
		t.Fatalf("period = %d-%02d, want 2025-07", p.PeriodYear, p.PeriodMonth)
	}
}

func TestBuildPeriodSkipsNonExpandable(t *testing.T) {
	today := date(2025, time.June, 1)

	oneTime := domain.Obligation{Frequency: domain.FrequencyOneTime, Active: true}
	if _, ok := BuildPeriod(oneTime, 2025, 6, today); ok {
		t.Fatalf("one_time obligation must not expand")
	}

	inactive := domain.Obligation{Frequency: domain.FrequencyMonthly, Active: false}
	if _, ok := BuildPeriod(inactive, 2025, 6, today); ok {
		t.Fatalf("inactive obligation must not expand")
	}

	outside := monthlyObligation(date(2026, time.January, 1), date(2027, time.January, 1), 7, 1000)
	if _, ok := BuildPeriod(outside, 2025, 6, today); ok {
		t.Fatalf("out-of-window period must not build")
	}
}
