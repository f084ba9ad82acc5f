package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/grospace/lease-engine/internal/config"
	"github.com/grospace/lease-engine/internal/core/derive"
	"github.com/grospace/lease-engine/internal/core/ports"
	"github.com/grospace/lease-engine/internal/core/usecase"
	"github.com/grospace/lease-engine/internal/infrastructure/extractor/pdftext"
	"github.com/grospace/lease-engine/internal/infrastructure/llm/gemini"
	"github.com/grospace/lease-engine/internal/infrastructure/queue/nats"
	"github.com/grospace/lease-engine/internal/infrastructure/report/xlsx"
	"github.com/grospace/lease-engine/internal/infrastructure/repository/postgres"
	"github.com/grospace/lease-engine/internal/infrastructure/resilience"
	"github.com/grospace/lease-engine/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue      ports.MessageQueue
	Agreements ports.AgreementRepository
	Classifier ports.DocumentClassifier

	UploadUC   ports.DocumentIngestor
	ProcessUC  ports.DocumentProcessor
	ConfirmUC  ports.AgreementConfirmer
	PaymentsUC ports.PaymentGenerator
	QAUC       ports.QuestionAnswerer
	RisksUC    ports.RiskAnalyzer
	Exporter   ports.ScheduleExporter

	llm     *gemini.Client
	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	outlets := postgres.NewOutletRepository(db)
	agreements := postgres.NewAgreementRepository(db)
	obligations := postgres.NewObligationRepository(db)
	alerts := postgres.NewAlertRepository(db)
	periods := postgres.NewPaymentPeriodRepository(db)
	activity := postgres.NewActivityLogRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	geminiClient := gemini.New(cfg.GeminiURL, cfg.GeminiModel, cfg.GeminiAPIKey, executor)
	classifier := gemini.NewClassifier(geminiClient)
	fields := gemini.NewFieldExtractor(geminiClient)
	riskDetector := gemini.NewRiskDetector(geminiClient)
	answerer := gemini.NewAnswerGenerator(geminiClient)

	extractor := pdftext.NewExtractor(storage)

	deriveCfg := derive.Config{CAMEscalationDates: cfg.CAMEscalationDates}

	uploadUC := usecase.NewUploadDocumentUseCase(agreements, storage, queue, cfg.DefaultOrganizationID)
	processUC := usecase.NewProcessDocumentUseCase(agreements, extractor, classifier, fields, riskDetector)
	confirmUC := usecase.NewConfirmAgreementUseCase(agreements, outlets, obligations, alerts, activity, deriveCfg, cfg.DefaultOrganizationID)
	paymentsUC := usecase.NewGeneratePaymentsUseCase(obligations, periods, activity)
	qaUC := usecase.NewAnswerQuestionUseCase(agreements, extractor, answerer)
	risksUC := usecase.NewReanalyzeRisksUseCase(agreements, extractor, riskDetector)
	exporter := xlsx.NewExporter(agreements, obligations, periods)

	return &App{
		Config: cfg,

		Queue:      queue,
		Agreements: agreements,
		Classifier: classifier,

		UploadUC:   uploadUC,
		ProcessUC:  processUC,
		ConfirmUC:  confirmUC,
		PaymentsUC: paymentsUC,
		QAUC:       qaUC,
		RisksUC:    risksUC,
		Exporter:   exporter,

		llm: geminiClient,
		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// SetLLMObserver hooks per-call LLM metrics into the shared Gemini client.
// Call it during startup, before serving traffic.
func (a *App) SetLLMObserver(observer func(operation string, duration time.Duration, err error)) {
	a.llm.SetObserver(observer)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
