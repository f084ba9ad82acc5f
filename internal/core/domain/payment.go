package domain

import "time"

type PaymentStatus string

const (
	PaymentOverdue       PaymentStatus = "overdue"
	PaymentDue           PaymentStatus = "due"
	PaymentUpcoming      PaymentStatus = "upcoming"
	PaymentPaid          PaymentStatus = "paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
)

// PaymentPeriod is one (year, month) instance of a monthly Obligation.
// At most one period exists per (obligation_id, period_year, period_month);
// DueAmount is copied from the obligation at generation time and is not
// re-derived when the obligation later changes.
type PaymentPeriod struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	ObligationID   string        `json:"obligation_id"`
	PeriodYear     int           `json:"period_year"`
	PeriodMonth    int           `json:"period_month"`
	DueDate        time.Time     `json:"due_date"`
	DueAmount      *float64      `json:"due_amount,omitempty"`
	Status         PaymentStatus `json:"status"`
	PaidAmount     float64       `json:"paid_amount"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
