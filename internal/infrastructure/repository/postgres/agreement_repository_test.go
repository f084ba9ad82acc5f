package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/grospace/lease-engine/internal/core/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return db, mock, func() { _ = db.Close() }
}

func TestAgreementGetByIDReturnsDomainNotFound(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAgreementRepository(db)

	mock.ExpectQuery("SELECT id, organization_id, outlet_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAgreementUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAgreementRepository(db)

	mock.ExpectExec("UPDATE agreements").
		WithArgs("missing", string(domain.AgreementProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.AgreementProcessing, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAgreementSaveRiskFlagsMarshalsJSON(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAgreementRepository(db)

	mock.ExpectExec("UPDATE agreements").
		WithArgs("ag-1", []byte(`[{"flag_id":3,"severity":"medium","explanation":"short notice period"}]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveRiskFlags(context.Background(), "ag-1", []domain.RiskFlag{
		{FlagID: 3, Explanation: "short notice period", Severity: "medium"},
	})
	if err != nil {
		t.Fatalf("SaveRiskFlags() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAgreementConfirmReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewAgreementRepository(db)

	mock.ExpectExec("UPDATE agreements").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ag := &domain.Agreement{ID: "missing", Status: domain.AgreementConfirmed}
	err := repo.Confirm(context.Background(), ag)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
