package ports

import (
	"context"
	"io"

	"github.com/grospace/lease-engine/internal/core/domain"
)

// OutletRepository persists physical-location records.
type OutletRepository interface {
	Create(ctx context.Context, outlet *domain.Outlet) error
	GetByID(ctx context.Context, id string) (*domain.Outlet, error)
}

// AgreementRepository persists agreement state across the upload, extraction
// and confirmation lifecycle.
type AgreementRepository interface {
	Create(ctx context.Context, ag *domain.Agreement) error
	GetByID(ctx context.Context, id string) (*domain.Agreement, error)
	UpdateStatus(ctx context.Context, id string, status domain.AgreementStatus, errMessage string) error
	SaveExtraction(ctx context.Context, id string, result domain.ExtractionResult) error
	SaveRiskFlags(ctx context.Context, id string, flags []domain.RiskFlag) error
	Confirm(ctx context.Context, ag *domain.Agreement) error
}

// ObligationRepository persists derived financial obligations.
type ObligationRepository interface {
	Create(ctx context.Context, ob *domain.Obligation) error
	ListActiveMonthly(ctx context.Context, organizationID string) ([]domain.Obligation, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]domain.Obligation, error)
}

// AlertRepository persists derived compliance alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
}

// PaymentPeriodRepository persists materialized payment periods. Create is a
// conditional insert: it reports false without error when the
// (obligation, year, month) period already exists.
type PaymentPeriodRepository interface {
	Exists(ctx context.Context, obligationID string, year, month int) (bool, error)
	Create(ctx context.Context, period *domain.PaymentPeriod) (bool, error)
	ListUpcomingByAgreement(ctx context.Context, agreementID string) ([]domain.PaymentPeriod, error)
}

// ActivityLog records audit entries for state-changing actions.
type ActivityLog interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-uploaded events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, agreementID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, ag *domain.Agreement) (string, error)
}

// DocumentClassifier labels extracted text with a document type.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string) (domain.DocumentType, error)
}

// FieldExtractor performs schema-guided structured extraction.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string, docType domain.DocumentType) (map[string]any, error)
}

// RiskDetector analyzes a lease for catalog risk conditions.
type RiskDetector interface {
	DetectRisks(ctx context.Context, text string, extracted map[string]any) ([]domain.RiskFlag, error)
}

// AnswerGenerator answers user questions about a specific document.
type AnswerGenerator interface {
	Answer(ctx context.Context, question, documentText, extractionSummary string) (string, error)
}
