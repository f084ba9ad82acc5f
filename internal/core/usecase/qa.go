package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
)

const maxSummaryChars = 4000

// AnswerQuestionUseCase answers free-form questions about one stored
// agreement, grounding the generator on the document text plus the extraction
// summary.
type AnswerQuestionUseCase struct {
	agreements ports.AgreementRepository
	extractor  ports.TextExtractor
	generator  ports.AnswerGenerator
}

func NewAnswerQuestionUseCase(
	agreements ports.AgreementRepository,
	extractor ports.TextExtractor,
	generator ports.AnswerGenerator,
) *AnswerQuestionUseCase {
	return &AnswerQuestionUseCase{
		agreements: agreements,
		extractor:  extractor,
		generator:  generator,
	}
}

func (uc *AnswerQuestionUseCase) Answer(ctx context.Context, agreementID, question string) (string, error) {
	if question == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "answer question", errors.New("question is required"))
	}

	ag, err := uc.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return "", fmt.Errorf("fetch agreement by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, ag)
	if err != nil {
		return "", fmt.Errorf("extract document text: %w", err)
	}
	if text == "" {
		return "", domain.WrapError(domain.ErrNotFound, "answer question", errors.New("document text not available"))
	}

	answer, err := uc.generator.Answer(ctx, question, text, extractionSummary(ag))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

func extractionSummary(ag *domain.Agreement) string {
	if len(ag.Extraction) == 0 {
		return ""
	}
	raw, err := json.MarshalIndent(ag.Extraction, "", "  ")
	if err != nil {
		return ""
	}
	if len(raw) > maxSummaryChars {
		raw = raw[:maxSummaryChars]
	}
	return string(raw)
}
