package derive

import (
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
)

const dueSoonDays = 7

// TargetPeriod resolves today plus a month offset into a (year, month) pair.
func TargetPeriod(today time.Time, offset int) (int, int) {
	t := AddMonths(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), offset)
	return t.Year(), int(t.Month())
}

// InWindow reports whether (year, month) falls inside the obligation's
// validity window, compared at month granularity. An open-ended side of the
// window never excludes.
func InWindow(ob domain.Obligation, year, month int) bool {
	idx := year*12 + month - 1
	if ob.StartDate != nil && idx < monthIndex(*ob.StartDate) {
		return false
	}
	if ob.EndDate != nil && idx > monthIndex(*ob.EndDate) {
		return false
	}
	return true
}

// BuildPeriod materializes one payment period for a monthly obligation. The
// second return is false when the period is outside the validity window or
// the obligation is not expandable (one_time or inactive). DueAmount is
// copied from the obligation at build time.
func BuildPeriod(ob domain.Obligation, year, month int, today time.Time) (domain.PaymentPeriod, bool) {
	if !ob.Active || ob.Frequency != domain.FrequencyMonthly {
		return domain.PaymentPeriod{}, false
	}
	if !InWindow(ob, year, month) {
		return domain.PaymentPeriod{}, false
	}

	dueDay := defaultPaymentDay
	if ob.DueDayOfMonth != nil {
		dueDay = *ob.DueDayOfMonth
	}
	dueDate := time.Date(year, time.Month(month), clampDueDay(dueDay), 0, 0, 0, 0, time.UTC)

	return domain.PaymentPeriod{
		OrganizationID: ob.OrganizationID,
		ObligationID:   ob.ID,
		PeriodYear:     year,
		PeriodMonth:    month,
		DueDate:        dueDate,
		DueAmount:      ob.Amount,
		Status:         classifyDue(dueDate, dateOnly(today)),
		PaidAmount:     0,
	}, true
}

func classifyDue(dueDate, today time.Time) domain.PaymentStatus {
	switch {
	case dueDate.Before(today):
		return domain.PaymentOverdue
	case !dueDate.After(today.AddDate(0, 0, dueSoonDays)):
		return domain.PaymentDue
	default:
		return domain.PaymentUpcoming
	}
}
