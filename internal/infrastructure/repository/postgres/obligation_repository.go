package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
)

type ObligationRepository struct {
	db *sql.DB
}

func NewObligationRepository(db *sql.DB) *ObligationRepository {
	return &ObligationRepository{db: db}
}

const obligationColumns = `
	id, organization_id, agreement_id, outlet_id, type, frequency, amount, formula,
	due_day_of_month, start_date, end_date,
	escalation_pct, escalation_frequency_years, next_escalation_date,
	active, created_at, updated_at`

func (r *ObligationRepository) Create(ctx context.Context, ob *domain.Obligation) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO obligations (`+obligationColumns+`
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
`,
		ob.ID, ob.OrganizationID, ob.AgreementID, ob.OutletID,
		string(ob.Type), string(ob.Frequency), ob.Amount, ob.Formula,
		ob.DueDayOfMonth, ob.StartDate, ob.EndDate,
		ob.EscalationPct, ob.EscalationFreqYears, ob.NextEscalationDate,
		ob.Active, ob.CreatedAt, ob.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert obligation: %w", err)
	}
	return nil
}

// ListActiveMonthly returns the obligations the payment generator expands.
// An empty organizationID means all organizations.
func (r *ObligationRepository) ListActiveMonthly(ctx context.Context, organizationID string) ([]domain.Obligation, error) {
	query := `
SELECT` + obligationColumns + `
FROM obligations
WHERE active AND frequency = 'monthly'`
	args := []any{}
	if organizationID != "" {
		query += ` AND organization_id = $1`
		args = append(args, organizationID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active obligations: %w", err)
	}
	defer rows.Close()
	return scanObligations(rows)
}

func (r *ObligationRepository) ListByAgreement(ctx context.Context, agreementID string) ([]domain.Obligation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT`+obligationColumns+`
FROM obligations
WHERE agreement_id = $1
ORDER BY created_at
`, agreementID)
	if err != nil {
		return nil, fmt.Errorf("list obligations by agreement: %w", err)
	}
	defer rows.Close()
	return scanObligations(rows)
}

func scanObligations(rows *sql.Rows) ([]domain.Obligation, error) {
	var out []domain.Obligation
	for rows.Next() {
		var ob domain.Obligation
		var obType, frequency string
		err := rows.Scan(
			&ob.ID, &ob.OrganizationID, &ob.AgreementID, &ob.OutletID,
			&obType, &frequency, &ob.Amount, &ob.Formula,
			&ob.DueDayOfMonth, &ob.StartDate, &ob.EndDate,
			&ob.EscalationPct, &ob.EscalationFreqYears, &ob.NextEscalationDate,
			&ob.Active, &ob.CreatedAt, &ob.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		ob.Type = domain.ObligationType(obType)
		ob.Frequency = domain.Frequency(frequency)
		out = append(out, ob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate obligations: %w", err)
	}
	return out, nil
}
