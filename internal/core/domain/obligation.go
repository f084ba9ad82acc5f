package domain

import "time"

type ObligationType string

const (
	ObligationRent            ObligationType = "rent"
	ObligationCAM             ObligationType = "cam"
	ObligationHVAC            ObligationType = "hvac"
	ObligationElectricity     ObligationType = "electricity"
	ObligationSecurityDeposit ObligationType = "security_deposit"
	ObligationCAMDeposit      ObligationType = "cam_deposit"
	ObligationUtilityDeposit  ObligationType = "utility_deposit"
)

type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyOneTime Frequency = "one_time"
)

// Obligation is a recurring or one-time financial duty owned by one Agreement
// and one Outlet. Amount may be nil for metered/variable charges, in which
// case Formula carries the human-readable rule. A one_time obligation has no
// due day and is never expanded into payment periods.
type Obligation struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	AgreementID    string         `json:"agreement_id"`
	OutletID       string         `json:"outlet_id"`
	Type           ObligationType `json:"type"`
	Frequency      Frequency      `json:"frequency"`
	Amount         *float64       `json:"amount,omitempty"`
	Formula        *string        `json:"formula,omitempty"`
	DueDayOfMonth  *int           `json:"due_day_of_month,omitempty"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`

	EscalationPct       *float64   `json:"escalation_pct,omitempty"`
	EscalationFreqYears *int       `json:"escalation_frequency_years,omitempty"`
	NextEscalationDate  *time.Time `json:"next_escalation_date,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
