// Package derive is the deterministic obligation and alert derivation engine.
// Every function is total over arbitrary extraction shapes: malformed fields
// degrade to absent values and incomplete inputs skip the affected output,
// never the whole derivation.
package derive

import (
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
)

// Config carries the engine's behavioral switches.
type Config struct {
	// CAMEscalationDates controls whether CAM obligations get a
	// next_escalation_date the way rent obligations do.
	CAMEscalationDates bool
}

// BuildOutlet maps the premises/parties/franchise sections onto an Outlet.
// Identity, timestamps and lifecycle status are stamped by the caller.
func BuildOutlet(ex extraction.Extraction, orgID string) domain.Outlet {
	premises := extraction.Section(ex, "premises")
	parties := extraction.Section(ex, "parties")
	franchise := extraction.Section(ex, "franchise")

	name := "New Outlet"
	if v, ok := extraction.String(premises["property_name"]); ok {
		name = v
	} else if v, ok := extraction.String(parties["brand_name"]); ok {
		name = v
	}

	out := domain.Outlet{
		OrganizationID:  orgID,
		Name:            name,
		Brand:           optString(parties["brand_name"]),
		Address:         optString(premises["full_address"]),
		City:            optString(premises["city"]),
		State:           optString(premises["state"]),
		Pincode:         optString(premises["pincode"]),
		Floor:           optString(premises["floor"]),
		UnitNumber:      optString(premises["unit_number"]),
		SuperAreaSqft:   optNumber(premises["super_area_sqft"]),
		CoveredAreaSqft: optNumber(premises["covered_area_sqft"]),
		CarpetAreaSqft:  optNumber(premises["carpet_area_sqft"]),
		Status:          domain.OutletFitOut,
	}
	if v, ok := extraction.Enum(premises["property_type"], domain.PropertyTypes); ok {
		out.PropertyType = &v
	}
	if v, ok := extraction.Enum(franchise["franchise_model"], domain.FranchiseModels); ok {
		out.FranchiseModel = &v
	}
	return out
}

// ApplyAgreementSummary fills the derived financial summary and key dates on
// an agreement from its extraction payload.
func ApplyAgreementSummary(ex extraction.Extraction, ag *domain.Agreement) {
	leaseTerm := extraction.Section(ex, "lease_term")
	rent := extraction.Section(ex, "rent")
	charges := extraction.Section(ex, "charges")
	deposits := extraction.Section(ex, "deposits")

	if v, ok := extraction.Enum(rent["rent_model"], domain.RentModels); ok {
		ag.RentModel = &v
	}

	amount, rate := scheduleFirst(ex)
	ag.MonthlyRent = amount
	ag.RentPerSqft = rate
	ag.CAMMonthly = optNumber(charges["cam_monthly"])
	ag.SecurityDeposit = optNumber(deposits["security_deposit_amount"])

	total := 0.0
	if ag.MonthlyRent != nil {
		total += *ag.MonthlyRent
	}
	if ag.CAMMonthly != nil {
		total += *ag.CAMMonthly
	}
	if total > 0 {
		ag.TotalMonthlyOutflow = &total
	}

	ag.CommencementDate = optDate(leaseTerm["lease_commencement_date"])
	ag.RentCommencementDate = optDate(leaseTerm["rent_commencement_date"])
	ag.ExpiryDate = optDate(leaseTerm["lease_expiry_date"])

	if lockIn, ok := extraction.Int(leaseTerm["lock_in_months"]); ok && ag.CommencementDate != nil {
		end := AddMonths(*ag.CommencementDate, lockIn)
		ag.LockInEndDate = &end
	}
}

// scheduleFirst reads monthly rent and per-sqft rate from the first element of
// the rent_schedule array. First non-null key wins; the rest of the array is
// never aggregated.
func scheduleFirst(ex extraction.Extraction) (amount, rate *float64) {
	rent := extraction.Section(ex, "rent")
	raw, ok := extraction.Unwrap(rent["rent_schedule"])
	if !ok {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, nil
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return nil, nil
	}
	for _, key := range []string{"mglr_monthly", "monthly_rent", "rent"} {
		if amount = optNumber(first[key]); amount != nil {
			break
		}
	}
	for _, key := range []string{"mglr_per_sqft", "rent_per_sqft"} {
		if rate = optNumber(first[key]); rate != nil {
			break
		}
	}
	return amount, rate
}

func optString(field any) *string {
	if v, ok := extraction.String(field); ok {
		return &v
	}
	return nil
}

func optNumber(field any) *float64 {
	if v, ok := extraction.Number(field); ok {
		return &v
	}
	return nil
}

func optDate(field any) *time.Time {
	if v, ok := extraction.Date(field); ok {
		return &v
	}
	return nil
}
