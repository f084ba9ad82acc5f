package ports

import (
	"context"
	"io"

	"github.com/grospace/lease-engine/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader, organizationID string) (*domain.Agreement, error)
}

// DocumentProcessor is the inbound contract for asynchronous extraction.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, agreementID string) error
}

// ConfirmResult reports what confirm-and-activate created.
type ConfirmResult struct {
	AgreementID        string `json:"agreement_id"`
	OutletID           string `json:"outlet_id"`
	ObligationsCreated int    `json:"obligations_created"`
	AlertsCreated      int    `json:"alerts_created"`
}

// AgreementConfirmer turns a reviewed extraction into the durable outlet,
// agreement, obligation and alert records.
type AgreementConfirmer interface {
	Confirm(ctx context.Context, agreementID, organizationID string) (*ConfirmResult, error)
}

// PaymentGenerator materializes payment periods for a rolling horizon.
type PaymentGenerator interface {
	Generate(ctx context.Context, monthsAhead int, organizationID string) (int, error)
}

// QuestionAnswerer answers questions about a stored agreement document.
type QuestionAnswerer interface {
	Answer(ctx context.Context, agreementID, question string) (string, error)
}

// RiskAnalyzer re-runs risk detection for a stored agreement.
type RiskAnalyzer interface {
	Reanalyze(ctx context.Context, agreementID string) ([]domain.RiskFlag, error)
}

// ScheduleExporter renders an agreement's obligations and upcoming payment
// periods as a spreadsheet.
type ScheduleExporter interface {
	Export(ctx context.Context, agreementID string) ([]byte, error)
}
