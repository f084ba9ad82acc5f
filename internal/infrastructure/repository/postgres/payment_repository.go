package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
)

// PaymentPeriodRepository persists materialized payment periods.
type PaymentPeriodRepository struct {
	db *sql.DB
}

func NewPaymentPeriodRepository(db *sql.DB) *PaymentPeriodRepository {
	return &PaymentPeriodRepository{db: db}
}

func (r *PaymentPeriodRepository) Exists(ctx context.Context, obligationID string, year, month int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM payment_periods
	WHERE obligation_id = $1 AND period_year = $2 AND period_month = $3
)
`, obligationID, year, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check payment period existence: %w", err)
	}
	return exists, nil
}

// Create inserts a period unless the (obligation, year, month) triple already
// exists. The unique index makes concurrent generator runs race-safe: the
// loser's insert is a no-op and Create reports false.
func (r *PaymentPeriodRepository) Create(ctx context.Context, period *domain.PaymentPeriod) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO payment_periods (
	id, organization_id, obligation_id, period_year, period_month,
	due_date, due_amount, status, paid_amount, notes, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (obligation_id, period_year, period_month) DO NOTHING
`,
		period.ID, period.OrganizationID, period.ObligationID,
		period.PeriodYear, period.PeriodMonth,
		period.DueDate, period.DueAmount, string(period.Status),
		period.PaidAmount, period.Notes, period.CreatedAt, period.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert payment period: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("payment period rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PaymentPeriodRepository) ListUpcomingByAgreement(ctx context.Context, agreementID string) ([]domain.PaymentPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.organization_id, p.obligation_id, p.period_year, p.period_month,
	p.due_date, p.due_amount, p.status, p.paid_amount, p.notes, p.created_at, p.updated_at
FROM payment_periods p
JOIN obligations o ON o.id = p.obligation_id
WHERE o.agreement_id = $1
ORDER BY p.period_year, p.period_month
`, agreementID)
	if err != nil {
		return nil, fmt.Errorf("list payment periods: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentPeriod
	for rows.Next() {
		var p domain.PaymentPeriod
		var status string
		err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.ObligationID, &p.PeriodYear, &p.PeriodMonth,
			&p.DueDate, &p.DueAmount, &status, &p.PaidAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment period: %w", err)
		}
		p.Status = domain.PaymentStatus(status)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment periods: %w", err)
	}
	return out, nil
}
