package derive

import (
	"fmt"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
)

var (
	leaseExpiryLeads  = []int{180, 90, 30, 7}
	lockInExpiryLeads = []int{90, 30}
	escalationLeads   = []int{90, 30, 7}
	fitOutLeads       = []int{30, 7}
)

const (
	rentDueMonths   = 6
	rentDueLeadDays = 7
	dueDayCeiling   = 28
)

// Alerts derives the staged compliance alerts for a lease as of today. Each
// category independently requires its source dates to normalize; a missing or
// unparsable date drops only that category. No alert is emitted with a
// trigger date before today. Ownership ids and identity are stamped by the
// caller.
func Alerts(ex extraction.Extraction, outletName string, today time.Time) []domain.Alert {
	today = dateOnly(today)
	leaseTerm := extraction.Section(ex, "lease_term")
	rentSec := extraction.Section(ex, "rent")

	var out []domain.Alert

	if expiry, ok := extraction.Date(leaseTerm["lease_expiry_date"]); ok {
		for _, lead := range leaseExpiryLeads {
			severity := domain.SeverityMedium
			if lead <= 30 {
				severity = domain.SeverityHigh
			}
			out = appendAlert(out, today, domain.Alert{
				Type:          domain.AlertLeaseExpiry,
				Severity:      severity,
				Title:         fmt.Sprintf("Lease expires in %d days", lead),
				Message:       fmt.Sprintf("Lease for %s expires on %s. Review renewal options.", outletName, expiry.Format("2006-01-02")),
				LeadDays:      lead,
				ReferenceDate: expiry,
			})
		}
	}

	if commencement, ok := extraction.Date(leaseTerm["lease_commencement_date"]); ok {
		if lockIn, ok := extraction.Int(leaseTerm["lock_in_months"]); ok {
			lockInEnd := AddMonths(commencement, lockIn)
			for _, lead := range lockInExpiryLeads {
				out = appendAlert(out, today, domain.Alert{
					Type:          domain.AlertLockInExpiry,
					Severity:      domain.SeverityMedium,
					Title:         fmt.Sprintf("Lock-in period ends in %d days", lead),
					Message:       fmt.Sprintf("Lock-in for %s ends on %s. Exit becomes possible after this date.", outletName, lockInEnd.Format("2006-01-02")),
					LeadDays:      lead,
					ReferenceDate: lockInEnd,
				})
			}
		}
	}

	if next, ok := nextEscalation(leaseTerm, rentSec, today); ok {
		for _, lead := range escalationLeads {
			out = appendAlert(out, today, domain.Alert{
				Type:          domain.AlertEscalation,
				Severity:      domain.SeverityMedium,
				Title:         fmt.Sprintf("Rent escalation in %d days", lead),
				Message:       fmt.Sprintf("Next rent escalation for %s is due on %s.", outletName, next.Format("2006-01-02")),
				LeadDays:      lead,
				ReferenceDate: next,
			})
		}
	}

	out = append(out, rentDueAlerts(rentSec, outletName, today)...)

	if commencement, ok := extraction.Date(leaseTerm["lease_commencement_date"]); ok {
		if fitOutDays, ok := extraction.Int(leaseTerm["fit_out_period_days"]); ok && fitOutDays > 0 {
			deadline := commencement.AddDate(0, 0, fitOutDays)
			for _, lead := range fitOutLeads {
				out = appendAlert(out, today, domain.Alert{
					Type:          domain.AlertFitOutDeadline,
					Severity:      domain.SeverityHigh,
					Title:         fmt.Sprintf("Fit-out deadline in %d days", lead),
					Message:       fmt.Sprintf("Fit-out period for %s ends on %s.", outletName, deadline.Format("2006-01-02")),
					LeadDays:      lead,
					ReferenceDate: deadline,
				})
			}
		}
	}

	return out
}

// nextEscalation steps from the rent window start in frequency-year increments
// until the result is on or after today, so the alert always points at the
// next future occurrence rather than the first one.
func nextEscalation(leaseTerm, rentSec map[string]any, today time.Time) (time.Time, bool) {
	base, ok := extraction.Date(leaseTerm["rent_commencement_date"])
	if !ok {
		base, ok = extraction.Date(leaseTerm["lease_commencement_date"])
		if !ok {
			return time.Time{}, false
		}
	}
	freq, ok := extraction.Int(rentSec["escalation_frequency_years"])
	if !ok || freq <= 0 {
		return time.Time{}, false
	}

	next := AddMonths(base, freq*12)
	for next.Before(today) {
		next = AddMonths(next, freq*12)
	}
	return next, true
}

// rentDueAlerts covers the next six calendar months, one 7-day-lead alert per
// month, with the due day clamped into [1, 28] so every month contains it.
func rentDueAlerts(rentSec map[string]any, outletName string, today time.Time) []domain.Alert {
	paymentDay := defaultPaymentDay
	if d, ok := extraction.Int(rentSec["mglr_payment_day"]); ok {
		paymentDay = d
	}
	paymentDay = clampDueDay(paymentDay)

	anchor := time.Date(today.Year(), today.Month(), paymentDay, 0, 0, 0, 0, time.UTC)

	var out []domain.Alert
	for i := 0; i < rentDueMonths; i++ {
		due := AddMonths(anchor, i)
		out = appendAlert(out, today, domain.Alert{
			Type:          domain.AlertRentDue,
			Severity:      domain.SeverityMedium,
			Title:         fmt.Sprintf("Rent due on %s", due.Format("2006-01-02")),
			Message:       fmt.Sprintf("Monthly rent for %s is due on %s.", outletName, due.Format("2006-01-02")),
			LeadDays:      rentDueLeadDays,
			ReferenceDate: due,
		})
	}
	return out
}

// appendAlert finalizes trigger date and status and drops retroactive alerts.
func appendAlert(alerts []domain.Alert, today time.Time, alert domain.Alert) []domain.Alert {
	alert.TriggerDate = alert.ReferenceDate.AddDate(0, 0, -alert.LeadDays)
	if alert.TriggerDate.Before(today) {
		return alerts
	}
	alert.Status = domain.AlertPending
	return append(alerts, alert)
}
