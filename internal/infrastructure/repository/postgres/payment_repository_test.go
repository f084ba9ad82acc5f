package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/grospace/lease-engine/internal/core/domain"
)

func TestPaymentPeriodExists(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewPaymentPeriodRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ob-1", 2025, 6).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "ob-1", 2025, 6)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Fatalf("expected exists = true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPaymentPeriodCreateReportsInsert(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewPaymentPeriodRepository(db)

	mock.ExpectExec("INSERT INTO payment_periods").
		WillReturnResult(sqlmock.NewResult(0, 1))

	amount := 285000.0
	created, err := repo.Create(context.Background(), &domain.PaymentPeriod{
		ID:           "pp-1",
		ObligationID: "ob-1",
		PeriodYear:   2025,
		PeriodMonth:  6,
		DueAmount:    &amount,
		Status:       domain.PaymentUpcoming,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created {
		t.Fatalf("expected created = true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPaymentPeriodCreateIsNoOpOnConflict(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewPaymentPeriodRepository(db)

	mock.ExpectExec("INSERT INTO payment_periods").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), &domain.PaymentPeriod{
		ID:           "pp-2",
		ObligationID: "ob-1",
		PeriodYear:   2025,
		PeriodMonth:  6,
		Status:       domain.PaymentUpcoming,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created {
		t.Fatalf("conflicting insert must report created = false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListUpcomingByAgreementScansRows(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewPaymentPeriodRepository(db)

	due := time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC)
	amount := 285000.0
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "obligation_id", "period_year", "period_month",
		"due_date", "due_amount", "status", "paid_amount", "notes", "created_at", "updated_at",
	}).AddRow("pp-1", "org-1", "ob-1", 2025, 6, due, amount, "due", 0.0, nil, due, due)

	mock.ExpectQuery("SELECT p.id, p.organization_id").
		WithArgs("ag-1").
		WillReturnRows(rows)

	periods, err := repo.ListUpcomingByAgreement(context.Background(), "ag-1")
	if err != nil {
		t.Fatalf("ListUpcomingByAgreement() error = %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("periods = %d, want 1", len(periods))
	}
	p := periods[0]
	if p.Status != domain.PaymentDue {
		t.Fatalf("status = %s", p.Status)
	}
	if p.DueAmount == nil || *p.DueAmount != 285000 {
		t.Fatalf("due amount = %v", p.DueAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
