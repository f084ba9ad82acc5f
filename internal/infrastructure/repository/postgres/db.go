package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates all engine tables. The advisory lock serializes
// bootstrap DDL across concurrent api/worker startups.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082301)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS outlets (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	name TEXT NOT NULL,
	brand TEXT,
	address TEXT,
	city TEXT,
	state TEXT,
	pincode TEXT,
	floor TEXT,
	unit_number TEXT,
	super_area_sqft DOUBLE PRECISION,
	covered_area_sqft DOUBLE PRECISION,
	carpet_area_sqft DOUBLE PRECISION,
	property_type TEXT,
	franchise_model TEXT,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outlets_org ON outlets(organization_id);

CREATE TABLE IF NOT EXISTS agreements (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	outlet_id TEXT REFERENCES outlets(id),
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	source_filename TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	extraction JSONB,
	confidence JSONB,
	risk_flags JSONB NOT NULL DEFAULT '[]'::jsonb,
	rent_model TEXT,
	monthly_rent DOUBLE PRECISION,
	rent_per_sqft DOUBLE PRECISION,
	cam_monthly DOUBLE PRECISION,
	total_monthly_outflow DOUBLE PRECISION,
	security_deposit DOUBLE PRECISION,
	commencement_date DATE,
	rent_commencement_date DATE,
	expiry_date DATE,
	lock_in_end_date DATE,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_agreements_org ON agreements(organization_id);
CREATE INDEX IF NOT EXISTS idx_agreements_status ON agreements(status);

CREATE TABLE IF NOT EXISTS obligations (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	agreement_id TEXT NOT NULL REFERENCES agreements(id),
	outlet_id TEXT NOT NULL REFERENCES outlets(id),
	type TEXT NOT NULL,
	frequency TEXT NOT NULL,
	amount DOUBLE PRECISION,
	formula TEXT,
	due_day_of_month INTEGER,
	start_date DATE,
	end_date DATE,
	escalation_pct DOUBLE PRECISION,
	escalation_frequency_years INTEGER,
	next_escalation_date DATE,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_obligations_org_active ON obligations(organization_id, active);
CREATE INDEX IF NOT EXISTS idx_obligations_agreement ON obligations(agreement_id);

CREATE TABLE IF NOT EXISTS alerts (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	outlet_id TEXT NOT NULL REFERENCES outlets(id),
	agreement_id TEXT REFERENCES agreements(id),
	type TEXT NOT NULL,
	severity TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	trigger_date DATE NOT NULL,
	lead_days INTEGER NOT NULL,
	reference_date DATE NOT NULL,
	status TEXT NOT NULL,
	assignee TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_alerts_org_trigger ON alerts(organization_id, trigger_date);

CREATE TABLE IF NOT EXISTS payment_periods (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	obligation_id TEXT NOT NULL REFERENCES obligations(id),
	period_year INTEGER NOT NULL,
	period_month INTEGER NOT NULL,
	due_date DATE NOT NULL,
	due_amount DOUBLE PRECISION,
	status TEXT NOT NULL,
	paid_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_periods_obligation_period
	ON payment_periods(obligation_id, period_year, period_month);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	action TEXT NOT NULL,
	entity_kind TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	detail JSONB,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_org_created ON activity_log(organization_id, created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
