package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
)

type AgreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

func (r *AgreementRepository) Create(ctx context.Context, ag *domain.Agreement) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO agreements (
	id, organization_id, type, status, source_filename, storage_path, risk_flags, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,'[]'::jsonb,$7,$8)
`,
		ag.ID, ag.OrganizationID, string(ag.Type), string(ag.Status),
		ag.SourceFilename, ag.StoragePath, ag.CreatedAt, ag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert agreement: %w", err)
	}
	return nil
}

func (r *AgreementRepository) GetByID(ctx context.Context, id string) (*domain.Agreement, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, organization_id, outlet_id, type, status, source_filename, storage_path,
	extraction, confidence, risk_flags,
	rent_model, monthly_rent, rent_per_sqft, cam_monthly, total_monthly_outflow, security_deposit,
	commencement_date, rent_commencement_date, expiry_date, lock_in_end_date,
	error_message, created_at, updated_at
FROM agreements
WHERE id = $1
`, id)

	var ag domain.Agreement
	var docType, status string
	var extractionRaw, confidenceRaw, flagsRaw []byte
	var errMessage sql.NullString

	err := row.Scan(
		&ag.ID, &ag.OrganizationID, &ag.OutletID, &docType, &status, &ag.SourceFilename, &ag.StoragePath,
		&extractionRaw, &confidenceRaw, &flagsRaw,
		&ag.RentModel, &ag.MonthlyRent, &ag.RentPerSqft, &ag.CAMMonthly, &ag.TotalMonthlyOutflow, &ag.SecurityDeposit,
		&ag.CommencementDate, &ag.RentCommencementDate, &ag.ExpiryDate, &ag.LockInEndDate,
		&errMessage, &ag.CreatedAt, &ag.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get agreement", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan agreement: %w", err)
	}

	ag.Type = domain.DocumentType(docType)
	ag.Status = domain.AgreementStatus(status)
	ag.ErrorMessage = errMessage.String

	if len(extractionRaw) > 0 {
		if err := json.Unmarshal(extractionRaw, &ag.Extraction); err != nil {
			return nil, fmt.Errorf("unmarshal extraction: %w", err)
		}
	}
	if len(confidenceRaw) > 0 {
		if err := json.Unmarshal(confidenceRaw, &ag.Confidence); err != nil {
			return nil, fmt.Errorf("unmarshal confidence: %w", err)
		}
	}
	if len(flagsRaw) > 0 {
		if err := json.Unmarshal(flagsRaw, &ag.RiskFlags); err != nil {
			return nil, fmt.Errorf("unmarshal risk flags: %w", err)
		}
	}
	return &ag, nil
}

func (r *AgreementRepository) UpdateStatus(ctx context.Context, id string, status domain.AgreementStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE agreements
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update agreement status: %w", err)
	}
	return requireRow(res, "update agreement status", id)
}

func (r *AgreementRepository) SaveExtraction(ctx context.Context, id string, result domain.ExtractionResult) error {
	extractionJSON, err := json.Marshal(result.Extraction)
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}
	confidenceJSON, err := json.Marshal(result.Confidence)
	if err != nil {
		return fmt.Errorf("marshal confidence: %w", err)
	}
	flagsJSON, err := json.Marshal(result.RiskFlags)
	if err != nil {
		return fmt.Errorf("marshal risk flags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE agreements
SET type = $2, extraction = $3, confidence = $4, risk_flags = $5, updated_at = $6
WHERE id = $1
`, id, string(result.DocumentType), extractionJSON, confidenceJSON, flagsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	return requireRow(res, "save extraction", id)
}

func (r *AgreementRepository) SaveRiskFlags(ctx context.Context, id string, flags []domain.RiskFlag) error {
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("marshal risk flags: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE agreements
SET risk_flags = $2, updated_at = $3
WHERE id = $1
`, id, flagsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save risk flags: %w", err)
	}
	return requireRow(res, "save risk flags", id)
}

// Confirm writes the derived summary fields, the outlet reference and the
// confirmed status in one statement.
func (r *AgreementRepository) Confirm(ctx context.Context, ag *domain.Agreement) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE agreements
SET outlet_id = $2, status = $3,
	rent_model = $4, monthly_rent = $5, rent_per_sqft = $6, cam_monthly = $7,
	total_monthly_outflow = $8, security_deposit = $9,
	commencement_date = $10, rent_commencement_date = $11,
	expiry_date = $12, lock_in_end_date = $13,
	organization_id = $14, updated_at = $15
WHERE id = $1
`,
		ag.ID, ag.OutletID, string(ag.Status),
		ag.RentModel, ag.MonthlyRent, ag.RentPerSqft, ag.CAMMonthly,
		ag.TotalMonthlyOutflow, ag.SecurityDeposit,
		ag.CommencementDate, ag.RentCommencementDate,
		ag.ExpiryDate, ag.LockInEndDate,
		ag.OrganizationID, ag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("confirm agreement: %w", err)
	}
	return requireRow(res, "confirm agreement", ag.ID)
}

func requireRow(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
