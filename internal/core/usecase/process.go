package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/extraction"
	"github.com/grospace/lease-engine/internal/core/ports"
)

// minTextLength below which a PDF is treated as scanned: there is no OCR
// path, so extraction cannot proceed.
const minTextLength = 100

type ProcessDocumentUseCase struct {
	agreements ports.AgreementRepository
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
	fields     ports.FieldExtractor
	risks      ports.RiskDetector
}

func NewProcessDocumentUseCase(
	agreements ports.AgreementRepository,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	fields ports.FieldExtractor,
	risks ports.RiskDetector,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		agreements: agreements,
		extractor:  extractor,
		classifier: classifier,
		fields:     fields,
		risks:      risks,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, agreementID string) error {
	if err := uc.markStatus(ctx, agreementID, domain.AgreementProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.extractionPipeline(ctx, agreementID)
	if err != nil {
		if failErr := uc.markFailed(ctx, agreementID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.agreements.SaveExtraction(ctx, agreementID, *result); err != nil {
		if failErr := uc.markFailed(ctx, agreementID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save extraction: %w", err)
	}

	if err := uc.markStatus(ctx, agreementID, domain.AgreementReview, ""); err != nil {
		return fmt.Errorf("set status=review: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) extractionPipeline(ctx context.Context, agreementID string) (*domain.ExtractionResult, error) {
	ag, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("fetch agreement by id: %w", err)
	}

	text, err := uc.extractText(ctx, ag)
	if err != nil {
		return nil, err
	}

	docType, err := uc.classify(ctx, text)
	if err != nil {
		return nil, err
	}

	extracted, err := uc.fields.ExtractFields(ctx, text, docType)
	if err != nil {
		return nil, fmt.Errorf("extract structured fields: %w", err)
	}

	result := &domain.ExtractionResult{
		DocumentType: docType,
		Extraction:   extracted,
		Confidence:   extraction.ConfidenceMap(extracted),
		RiskFlags:    []domain.RiskFlag{},
		TextLength:   len(text),
	}

	// Risk detection only applies to leases.
	if docType == domain.DocLeaseLOI {
		flags, err := uc.risks.DetectRisks(ctx, text, extracted)
		if err != nil {
			return nil, fmt.Errorf("detect risk flags: %w", err)
		}
		result.RiskFlags = flags
	}

	return result, nil
}

func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, ag *domain.Agreement) (string, error) {
	text, err := uc.extractor.Extract(ctx, ag)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if len(text) < minTextLength {
		return "", domain.WrapError(domain.ErrUnsupportedDocument, "extract text",
			errors.New("too little text extracted, document appears to be scanned"))
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) classify(ctx context.Context, text string) (domain.DocumentType, error) {
	docType, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		return "", fmt.Errorf("classify document: %w", err)
	}
	if !domain.ValidDocumentType(string(docType)) {
		docType = domain.DocLeaseLOI
	}
	return docType, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, agreementID string, status domain.AgreementStatus, errMessage string) error {
	return uc.agreements.UpdateStatus(ctx, agreementID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, agreementID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, agreementID, domain.AgreementFailed, processErr.Error())
}
