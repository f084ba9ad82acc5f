package domain

import "time"

type AlertType string

const (
	AlertLeaseExpiry    AlertType = "lease_expiry"
	AlertLockInExpiry   AlertType = "lock_in_expiry"
	AlertEscalation     AlertType = "escalation"
	AlertRentDue        AlertType = "rent_due"
	AlertFitOutDeadline AlertType = "fit_out_deadline"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

type AlertStatus string

const (
	AlertPending      AlertStatus = "pending"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertSnoozed      AlertStatus = "snoozed"
)

// Alert is a dated compliance notification. TriggerDate is always
// ReferenceDate minus LeadDays; alerts whose trigger date has already passed
// at generation time are never created. Several alerts of the same type may
// target the same reference date with different lead days.
type Alert struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	OutletID       string      `json:"outlet_id"`
	AgreementID    *string     `json:"agreement_id,omitempty"`
	Type           AlertType   `json:"type"`
	Severity       Severity    `json:"severity"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	TriggerDate    time.Time   `json:"trigger_date"`
	LeadDays       int         `json:"lead_days"`
	ReferenceDate  time.Time   `json:"reference_date"`
	Status         AlertStatus `json:"status"`
	Assignee       *string     `json:"assignee,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
