package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
)

type OutletRepository struct {
	db *sql.DB
}

func NewOutletRepository(db *sql.DB) *OutletRepository {
	return &OutletRepository{db: db}
}

func (r *OutletRepository) Create(ctx context.Context, outlet *domain.Outlet) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO outlets (
	id, organization_id, name, brand, address, city, state, pincode, floor, unit_number,
	super_area_sqft, covered_area_sqft, carpet_area_sqft, property_type, franchise_model,
	status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
`,
		outlet.ID, outlet.OrganizationID, outlet.Name, outlet.Brand, outlet.Address,
		outlet.City, outlet.State, outlet.Pincode, outlet.Floor, outlet.UnitNumber,
		outlet.SuperAreaSqft, outlet.CoveredAreaSqft, outlet.CarpetAreaSqft,
		outlet.PropertyType, outlet.FranchiseModel,
		string(outlet.Status), outlet.CreatedAt, outlet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outlet: %w", err)
	}
	return nil
}

func (r *OutletRepository) GetByID(ctx context.Context, id string) (*domain.Outlet, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, organization_id, name, brand, address, city, state, pincode, floor, unit_number,
	super_area_sqft, covered_area_sqft, carpet_area_sqft, property_type, franchise_model,
	status, created_at, updated_at
FROM outlets
WHERE id = $1
`, id)

	var out domain.Outlet
	var status string
	err := row.Scan(
		&out.ID, &out.OrganizationID, &out.Name, &out.Brand, &out.Address,
		&out.City, &out.State, &out.Pincode, &out.Floor, &out.UnitNumber,
		&out.SuperAreaSqft, &out.CoveredAreaSqft, &out.CarpetAreaSqft,
		&out.PropertyType, &out.FranchiseModel,
		&status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get outlet", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan outlet: %w", err)
	}
	out.Status = domain.OutletStatus(status)
	return &out, nil
}
