package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
)

type ActivityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	detailJSON, err := json.Marshal(entry.Detail)
	if err != nil {
		return fmt.Errorf("marshal activity detail: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO activity_log (id, organization_id, action, entity_kind, entity_id, detail, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`,
		entry.ID, entry.OrganizationID, entry.Action, entry.EntityKind, entry.EntityID,
		detailJSON, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}
