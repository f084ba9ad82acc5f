package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
)

// ReanalyzeRisksUseCase re-runs the risk detector for a stored agreement and
// persists the refreshed flag list.
type ReanalyzeRisksUseCase struct {
	agreements ports.AgreementRepository
	extractor  ports.TextExtractor
	detector   ports.RiskDetector
}

func NewReanalyzeRisksUseCase(
	agreements ports.AgreementRepository,
	extractor ports.TextExtractor,
	detector ports.RiskDetector,
) *ReanalyzeRisksUseCase {
	return &ReanalyzeRisksUseCase{
		agreements: agreements,
		extractor:  extractor,
		detector:   detector,
	}
}

func (uc *ReanalyzeRisksUseCase) Reanalyze(ctx context.Context, agreementID string) ([]domain.RiskFlag, error) {
	ag, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("fetch agreement by id: %w", err)
	}
	if ag.Type != domain.DocLeaseLOI {
		return nil, domain.WrapError(domain.ErrInvalidInput, "reanalyze risks",
			errors.New("risk analysis applies to lease documents only"))
	}

	text, err := uc.extractor.Extract(ctx, ag)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}

	flags, err := uc.detector.DetectRisks(ctx, text, ag.Extraction)
	if err != nil {
		return nil, fmt.Errorf("detect risk flags: %w", err)
	}
	if flags == nil {
		flags = []domain.RiskFlag{}
	}

	if err := uc.agreements.SaveRiskFlags(ctx, agreementID, flags); err != nil {
		return nil, fmt.Errorf("save risk flags: %w", err)
	}
	return flags, nil
}
