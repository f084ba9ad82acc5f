// Package gemini adapts the Gemini generateContent API to the engine's
// classifier, field-extractor, risk-detector and answer-generator ports.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"net/http"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
	observer   func(operation string, duration time.Duration, err error)
}

func New(baseURL, model, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

// SetObserver registers a per-call hook for metrics. It must be set before the
// client is shared across goroutines.
func (c *Client) SetObserver(observer func(operation string, duration time.Duration, err error)) {
	c.observer = observer
}

type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.DocumentType, error) {
	respText, err := c.client.generateText(ctx, "classify", buildClassificationPrompt(text), 0)
	if err != nil {
		return "", err
	}
	label := strings.ToLower(strings.TrimSpace(respText))
	if !domain.ValidDocumentType(label) {
		return domain.DocLeaseLOI, nil
	}
	return domain.DocumentType(label), nil
}

type FieldExtractor struct {
	client *Client
}

func NewFieldExtractor(client *Client) *FieldExtractor {
	return &FieldExtractor{client: client}
}

func (e *FieldExtractor) ExtractFields(ctx context.Context, text string, docType domain.DocumentType) (map[string]any, error) {
	respText, err := e.client.generateJSON(ctx, "extract_fields", buildExtractionPrompt(text, docType))
	if err != nil {
		return nil, err
	}

	var extracted map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &extracted); err != nil {
		return nil, fmt.Errorf("parse extraction json: %w", err)
	}
	return extracted, nil
}

type RiskDetector struct {
	client *Client
}

func NewRiskDetector(client *Client) *RiskDetector {
	return &RiskDetector{client: client}
}

func (d *RiskDetector) DetectRisks(ctx context.Context, text string, extracted map[string]any) ([]domain.RiskFlag, error) {
	respText, err := d.client.generateJSON(ctx, "detect_risks", buildRiskPrompt(text, extracted))
	if err != nil {
		return nil, err
	}

	var result struct {
		Flags     []domain.RiskFlag `json:"flags"`
		RiskFlags []domain.RiskFlag `json:"risk_flags"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &result); err != nil {
		return nil, fmt.Errorf("parse risk flags json: %w", err)
	}
	if result.Flags != nil {
		return result.Flags, nil
	}
	if result.RiskFlags != nil {
		return result.RiskFlags, nil
	}
	return []domain.RiskFlag{}, nil
}

type AnswerGenerator struct {
	client *Client
}

func NewAnswerGenerator(client *Client) *AnswerGenerator {
	return &AnswerGenerator{client: client}
}

func (g *AnswerGenerator) Answer(ctx context.Context, question, documentText, extractionSummary string) (string, error) {
	return g.client.generateText(ctx, "answer", buildAnswerPrompt(question, documentText, extractionSummary), 0.1)
}

// extractJSONObject trims anything around the outermost JSON value, which
// guards against models that wrap output in markdown fences.
func extractJSONObject(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	end := strings.LastIndexAny(text, "}]")
	if end < start {
		return text
	}
	return text[start : end+1]
}
