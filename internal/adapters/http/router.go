// Package httpadapter exposes the engine's inbound operations over HTTP.
package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/grospace/lease-engine/internal/config"
	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
	"github.com/grospace/lease-engine/internal/observability/metrics"
)

const serviceName = "api"

// backpressure rejections fire after this much queueing, well below the
// server write timeout.
const backpressureAcquireTimeout = 5 * time.Second

type Deps struct {
	Ingest     ports.DocumentIngestor
	Confirm    ports.AgreementConfirmer
	Payments   ports.PaymentGenerator
	QA         ports.QuestionAnswerer
	Risks      ports.RiskAnalyzer
	Exporter   ports.ScheduleExporter
	Classifier ports.DocumentClassifier
	Agreements ports.AgreementRepository
	Metrics    *metrics.HTTPServerMetrics
}

type Router struct {
	cfg  config.Config
	deps Deps
}

func NewRouter(cfg config.Config, deps Deps) *Router {
	return &Router{cfg: cfg, deps: deps}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	mux.HandleFunc("/v1/payments/generate", rt.generatePayments)
	mux.HandleFunc("/v1/classify", rt.classifyText)
	mux.HandleFunc("/v1/qa", rt.answerQuestion)
	if rt.deps.Metrics != nil {
		mux.Handle("/metrics", rt.deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureAcquireTimeout)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.deps.Metrics != nil {
		handler = rt.deps.Metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	ag, err := rt.deps.Ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		r.FormValue("organization_id"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordDocumentUploaded(serviceName)
	}
	writeJSON(w, http.StatusAccepted, ag)
}

func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")

	switch {
	case strings.HasSuffix(rest, "/confirm"):
		rt.confirmAgreement(w, r, strings.TrimSuffix(rest, "/confirm"))
	case strings.HasSuffix(rest, "/risks"):
		rt.reanalyzeRisks(w, r, strings.TrimSuffix(rest, "/risks"))
	case strings.HasSuffix(rest, "/schedule.xlsx"):
		rt.exportSchedule(w, r, strings.TrimSuffix(rest, "/schedule.xlsx"))
	default:
		rt.getAgreement(w, r, rest)
	}
}

func (rt *Router) getAgreement(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agreement id is required"})
		return
	}

	ag, err := rt.deps.Agreements.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ag)
}

func (rt *Router) confirmAgreement(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agreement id is required"})
		return
	}

	var req struct {
		OrganizationID string `json:"organization_id"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.deps.Confirm.Confirm(r.Context(), id, req.OrganizationID)
	if rt.deps.Metrics != nil {
		obligations, alerts := 0, 0
		if result != nil {
			obligations, alerts = result.ObligationsCreated, result.AlertsCreated
		}
		rt.deps.Metrics.RecordConfirmation(serviceName, obligations, alerts, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) generatePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Months         int    `json:"months"`
		OrganizationID string `json:"organization_id"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	created, err := rt.deps.Payments.Generate(r.Context(), req.Months, req.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordPaymentPeriods(serviceName, "api", created)
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

func (rt *Router) classifyText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	docType, err := rt.deps.Classifier.Classify(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.DocumentType{"document_type": docType})
}

func (rt *Router) answerQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		AgreementID string `json:"agreement_id"`
		Question    string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.AgreementID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agreement_id is required"})
		return
	}

	answer, err := rt.deps.QA.Answer(r.Context(), req.AgreementID, strings.TrimSpace(req.Question))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (rt *Router) reanalyzeRisks(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agreement id is required"})
		return
	}

	flags, err := rt.deps.Risks.Reanalyze(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if flags == nil {
		flags = []domain.RiskFlag{}
	}
	writeJSON(w, http.StatusOK, map[string][]domain.RiskFlag{"risk_flags": flags})
}

func (rt *Router) exportSchedule(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agreement id is required"})
		return
	}

	data, err := rt.deps.Exporter.Export(r.Context(), id)
	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordScheduleExport(serviceName, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule-"+id+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decodeOptionalJSON tolerates an empty request body so operations with
// all-optional parameters can be called without one.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
