package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO alerts (
	id, organization_id, outlet_id, agreement_id, type, severity, title, message,
	trigger_date, lead_days, reference_date, status, assignee, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		alert.ID, alert.OrganizationID, alert.OutletID, alert.AgreementID,
		string(alert.Type), string(alert.Severity), alert.Title, alert.Message,
		alert.TriggerDate, alert.LeadDays, alert.ReferenceDate,
		string(alert.Status), alert.Assignee, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}
