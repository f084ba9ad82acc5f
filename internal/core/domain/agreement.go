package domain

import "time"

type DocumentType string

const (
	DocLeaseLOI           DocumentType = "lease_loi"
	DocLicenseCertificate DocumentType = "license_certificate"
	DocFranchiseAgreement DocumentType = "franchise_agreement"
)

// ValidDocumentType reports whether label is a member of the closed document
// type set. Unknown classifier output falls back to lease_loi upstream.
func ValidDocumentType(label string) bool {
	switch DocumentType(label) {
	case DocLeaseLOI, DocLicenseCertificate, DocFranchiseAgreement:
		return true
	}
	return false
}

type AgreementStatus string

const (
	AgreementUploaded   AgreementStatus = "uploaded"
	AgreementProcessing AgreementStatus = "processing"
	AgreementReview     AgreementStatus = "review"
	AgreementConfirmed  AgreementStatus = "confirmed"
	AgreementFailed     AgreementStatus = "failed"
)

// RentModels is the closed set accepted for rent.rent_model.
var RentModels = []string{"fixed", "revenue_share", "hybrid_mglr", "percentage_only"}

// RiskFlag is produced by the external risk-detection collaborator.
// FlagID refers to the fixed 8-item catalog.
type RiskFlag struct {
	FlagID      int    `json:"flag_id"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
	ClauseText  string `json:"clause_text,omitempty"`
}

// Agreement is a commercial lease owned by exactly one Outlet. The raw
// extraction payload travels with it; the derived financial summary and key
// dates are computed once at confirmation and are immutable afterwards except
// for status transitions.
type Agreement struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	OutletID       *string         `json:"outlet_id,omitempty"`
	Type           DocumentType    `json:"type"`
	Status         AgreementStatus `json:"status"`
	SourceFilename string          `json:"source_filename"`
	StoragePath    string          `json:"storage_path"`

	Extraction map[string]any    `json:"extraction,omitempty"`
	Confidence map[string]string `json:"confidence,omitempty"`
	RiskFlags  []RiskFlag        `json:"risk_flags,omitempty"`

	RentModel           *string  `json:"rent_model,omitempty"`
	MonthlyRent         *float64 `json:"monthly_rent,omitempty"`
	RentPerSqft         *float64 `json:"rent_per_sqft,omitempty"`
	CAMMonthly          *float64 `json:"cam_monthly,omitempty"`
	TotalMonthlyOutflow *float64 `json:"total_monthly_outflow,omitempty"`
	SecurityDeposit     *float64 `json:"security_deposit,omitempty"`

	CommencementDate     *time.Time `json:"commencement_date,omitempty"`
	RentCommencementDate *time.Time `json:"rent_commencement_date,omitempty"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	LockInEndDate        *time.Time `json:"lock_in_end_date,omitempty"`

	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExtractionResult is what the processing pipeline hands back for review.
type ExtractionResult struct {
	DocumentType DocumentType      `json:"document_type"`
	Extraction   map[string]any    `json:"extraction"`
	Confidence   map[string]string `json:"confidence"`
	RiskFlags    []RiskFlag        `json:"risk_flags"`
	TextLength   int               `json:"text_length"`
}
