package derive

import (
	"fmt"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
)

const defaultPaymentDay = 7

// Obligations derives the financial obligations implied by the extraction, in
// fixed order: rent, cam, hvac, electricity, security_deposit, cam_deposit,
// utility_deposit. A charge type whose required inputs are absent is silently
// skipped. Ownership ids, identity and timestamps are stamped by the caller.
func Obligations(ex extraction.Extraction, cfg Config) []domain.Obligation {
	leaseTerm := extraction.Section(ex, "lease_term")
	rentSec := extraction.Section(ex, "rent")
	charges := extraction.Section(ex, "charges")
	deposits := extraction.Section(ex, "deposits")
	premises := extraction.Section(ex, "premises")

	paymentDay := defaultPaymentDay
	if d, ok := extraction.Int(rentSec["mglr_payment_day"]); ok {
		paymentDay = d
	}

	commencement := optDate(leaseTerm["lease_commencement_date"])
	rentCommencement := optDate(leaseTerm["rent_commencement_date"])
	expiry := optDate(leaseTerm["lease_expiry_date"])

	var out []domain.Obligation

	// rent: prefers the rent-commencement date for its window start.
	if amount, _ := scheduleFirst(ex); amount != nil {
		ob := monthly(domain.ObligationRent, amount, nil, paymentDay, firstOf(rentCommencement, commencement), expiry)
		applyEscalation(&ob, rentSec["escalation_percentage"], rentSec["escalation_frequency_years"], true)
		out = append(out, ob)
	}

	// cam: anchored to lease commencement, with its own escalation percentage.
	if camMonthly := optNumber(charges["cam_monthly"]); camMonthly != nil {
		ob := monthly(domain.ObligationCAM, camMonthly, nil, paymentDay, firstOf(commencement, rentCommencement), expiry)
		applyEscalation(&ob, charges["cam_escalation_pct"], rentSec["escalation_frequency_years"], cfg.CAMEscalationDates)
		out = append(out, ob)
	}

	// hvac: rate x area, covered area preferred over super area.
	if rate, ok := extraction.Number(charges["hvac_rate_per_sqft"]); ok {
		area := optNumber(premises["covered_area_sqft"])
		basis := "covered_area"
		if area == nil {
			area = optNumber(premises["super_area_sqft"])
			basis = "super_area"
		}
		if area != nil {
			amount := rate * *area
			formula := fmt.Sprintf("%.2f/sqft x %.0f sqft (%s)", rate, *area, basis)
			out = append(out, monthly(domain.ObligationHVAC, &amount, &formula, paymentDay, firstOf(commencement, rentCommencement), expiry))
		}
	}

	// electricity: always metered, amount stays nil.
	if load, ok := extraction.Number(charges["electricity_load_kw"]); ok {
		formula := fmt.Sprintf("Actual metered (%.0f KW load)", load)
		out = append(out, monthly(domain.ObligationElectricity, nil, &formula, paymentDay, firstOf(commencement, rentCommencement), expiry))
	}

	if amount := optNumber(deposits["security_deposit_amount"]); amount != nil {
		out = append(out, oneTime(domain.ObligationSecurityDeposit, amount, commencement))
	}
	if amount := optNumber(deposits["cam_deposit_amount"]); amount != nil {
		out = append(out, oneTime(domain.ObligationCAMDeposit, amount, commencement))
	}

	if perKW, ok := extraction.Number(deposits["utility_deposit_per_kw"]); ok {
		if load, ok := extraction.Number(charges["electricity_load_kw"]); ok {
			amount := perKW * load
			out = append(out, oneTime(domain.ObligationUtilityDeposit, &amount, commencement))
		}
	}

	return out
}

func monthly(t domain.ObligationType, amount *float64, formula *string, dueDay int, start, end *time.Time) domain.Obligation {
	day := dueDay
	return domain.Obligation{
		Type:          t,
		Frequency:     domain.FrequencyMonthly,
		Amount:        amount,
		Formula:       formula,
		DueDayOfMonth: &day,
		StartDate:     start,
		EndDate:       end,
		Active:        true,
	}
}

func oneTime(t domain.ObligationType, amount *float64, start *time.Time) domain.Obligation {
	return domain.Obligation{
		Type:      t,
		Frequency: domain.FrequencyOneTime,
		Amount:    amount,
		StartDate: start,
		Active:    true,
	}
}

// applyEscalation copies escalation metadata onto ob and, when wanted,
// computes next_escalation_date = window start + frequency years. This is a
// one-shot value fixed at creation; the alert scheduler re-derives the next
// future occurrence on its own.
func applyEscalation(ob *domain.Obligation, pctField, freqField any, withNextDate bool) {
	if pct, ok := extraction.Number(pctField); ok {
		ob.EscalationPct = &pct
	}
	freq, ok := extraction.Int(freqField)
	if !ok || freq <= 0 {
		return
	}
	ob.EscalationFreqYears = &freq
	if withNextDate && ob.StartDate != nil {
		next := AddMonths(*ob.StartDate, freq*12)
		ob.NextEscalationDate = &next
	}
}

func firstOf(dates ...*time.Time) *time.Time {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}
