package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsUploadedTotal *prometheus.CounterVec
	confirmationsTotal     *prometheus.CounterVec
	obligationsCreated     *prometheus.CounterVec
	alertsCreated          *prometheus.CounterVec
	paymentPeriodsCreated  *prometheus.CounterVec
	scheduleExportsTotal   *prometheus.CounterVec
	llmCallsTotal          *prometheus.CounterVec
	llmDuration            *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grospace",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "grospace",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsUploadedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "documents_uploaded_total",
			Help:      "Total accepted document uploads.",
		},
		[]string{"service"},
	)
	confirmationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "agreement_confirmations_total",
			Help:      "Total confirm-and-activate runs by outcome.",
		},
		[]string{"service", "status"},
	)
	obligationsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "obligations_created_total",
			Help:      "Total obligations derived at confirmation time.",
		},
		[]string{"service"},
	)
	alertsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "alerts_created_total",
			Help:      "Total alerts scheduled at confirmation time.",
		},
		[]string{"service"},
	)
	paymentPeriodsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "payment_periods_created_total",
			Help:      "Total payment periods materialized by generation runs.",
		},
		[]string{"service", "trigger"},
	)
	scheduleExportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "engine",
			Name:      "schedule_exports_total",
			Help:      "Total rent-roll spreadsheet exports by outcome.",
		},
		[]string{"service", "status"},
	)
	llmCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grospace",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total LLM calls by operation and outcome.",
		},
		[]string{"service", "operation", "status"},
	)
	llmDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grospace",
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "LLM call duration in seconds by operation.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
		},
		[]string{"service", "operation"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsUploadedTotal,
		confirmationsTotal,
		obligationsCreated,
		alertsCreated,
		paymentPeriodsCreated,
		scheduleExportsTotal,
		llmCallsTotal,
		llmDuration,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		documentsUploadedTotal: documentsUploadedTotal,
		confirmationsTotal:     confirmationsTotal,
		obligationsCreated:     obligationsCreated,
		alertsCreated:          alertsCreated,
		paymentPeriodsCreated:  paymentPeriodsCreated,
		scheduleExportsTotal:   scheduleExportsTotal,
		llmCallsTotal:          llmCallsTotal,
		llmDuration:            llmDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses per-agreement paths so agreement ids do not explode
// label cardinality.
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/v1/documents/") {
		return path
	}
	rest := strings.TrimPrefix(path, "/v1/documents/")
	switch {
	case strings.HasSuffix(rest, "/confirm"):
		return "/v1/documents/{agreement_id}/confirm"
	case strings.HasSuffix(rest, "/risks"):
		return "/v1/documents/{agreement_id}/risks"
	case strings.HasSuffix(rest, "/schedule.xlsx"):
		return "/v1/documents/{agreement_id}/schedule.xlsx"
	default:
		return "/v1/documents/{agreement_id}"
	}
}

func (m *HTTPServerMetrics) RecordDocumentUploaded(service string) {
	m.documentsUploadedTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordConfirmation(service string, obligations, alerts int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.confirmationsTotal.WithLabelValues(service, status).Inc()
	if err != nil {
		return
	}
	if obligations > 0 {
		m.obligationsCreated.WithLabelValues(service).Add(float64(obligations))
	}
	if alerts > 0 {
		m.alertsCreated.WithLabelValues(service).Add(float64(alerts))
	}
}

func (m *HTTPServerMetrics) RecordPaymentPeriods(service, trigger string, created int) {
	if created <= 0 {
		return
	}
	m.paymentPeriodsCreated.WithLabelValues(service, trigger).Add(float64(created))
}

func (m *HTTPServerMetrics) RecordScheduleExport(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.scheduleExportsTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordLLMCall(service, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.llmCallsTotal.WithLabelValues(service, operation, status).Inc()
	m.llmDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
