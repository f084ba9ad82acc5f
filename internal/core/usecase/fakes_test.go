package usecase

import (
	"context"
	"io"
	"time"

	"github.com/grospace/lease-engine/internal/core/domain"
)

// Shared hand-written fakes for the use case tests. Each fake records what it
// was asked to persist and fails on demand.

type agreementRepoFake struct {
	agreement *domain.Agreement

	getErr     error
	createErr  error
	statusErr  error
	saveErr    error
	confirmErr error

	created     []*domain.Agreement
	statusCalls []statusCall
	savedResult *domain.ExtractionResult
	savedFlags  []domain.RiskFlag
	confirmed   *domain.Agreement
}

type statusCall struct {
	status domain.AgreementStatus
	errMsg string
}

func (f *agreementRepoFake) Create(_ context.Context, ag *domain.Agreement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, ag)
	return nil
}

func (f *agreementRepoFake) GetByID(context.Context, string) (*domain.Agreement, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyAg := *f.agreement
	return &copyAg, nil
}

func (f *agreementRepoFake) UpdateStatus(_ context.Context, _ string, status domain.AgreementStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return f.statusErr
}

func (f *agreementRepoFake) SaveExtraction(_ context.Context, _ string, result domain.ExtractionResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedResult = &result
	return nil
}

func (f *agreementRepoFake) SaveRiskFlags(_ context.Context, _ string, flags []domain.RiskFlag) error {
	f.savedFlags = flags
	return nil
}

func (f *agreementRepoFake) Confirm(_ context.Context, ag *domain.Agreement) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = ag
	return nil
}

type outletRepoFake struct {
	createErr error
	created   []*domain.Outlet
}

func (f *outletRepoFake) Create(_ context.Context, outlet *domain.Outlet) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, outlet)
	return nil
}

func (f *outletRepoFake) GetByID(context.Context, string) (*domain.Outlet, error) {
	return nil, domain.ErrNotFound
}

type obligationRepoFake struct {
	createErr error
	created   []*domain.Obligation
	active    []domain.Obligation
	listErr   error
}

func (f *obligationRepoFake) Create(_ context.Context, ob *domain.Obligation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, ob)
	return nil
}

func (f *obligationRepoFake) ListActiveMonthly(context.Context, string) ([]domain.Obligation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.active, nil
}

func (f *obligationRepoFake) ListByAgreement(context.Context, string) ([]domain.Obligation, error) {
	return f.active, nil
}

type alertRepoFake struct {
	createErr error
	created   []*domain.Alert
}

func (f *alertRepoFake) Create(_ context.Context, alert *domain.Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, alert)
	return nil
}

type paymentRepoFake struct {
	existing  map[string]bool
	createErr error
	created   []*domain.PaymentPeriod
}

func periodKey(obligationID string, year, month int) string {
	return obligationID + "|" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *paymentRepoFake) Exists(_ context.Context, obligationID string, year, month int) (bool, error) {
	return f.existing[periodKey(obligationID, year, month)], nil
}

func (f *paymentRepoFake) Create(_ context.Context, period *domain.PaymentPeriod) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	key := periodKey(period.ObligationID, period.PeriodYear, period.PeriodMonth)
	if f.existing[key] {
		return false, nil
	}
	if f.existing == nil {
		f.existing = map[string]bool{}
	}
	f.existing[key] = true
	f.created = append(f.created, period)
	return true, nil
}

func (f *paymentRepoFake) ListUpcomingByAgreement(context.Context, string) ([]domain.PaymentPeriod, error) {
	return nil, nil
}

type activityLogFake struct {
	recordErr error
	entries   []*domain.ActivityEntry
}

func (f *activityLogFake) Record(_ context.Context, entry *domain.ActivityEntry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

type storageFake struct {
	saveErr error
	saved   map[string][]byte
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, domain.ErrNotFound
}

type queueFake struct {
	publishErr error
	published  []string
}

func (f *queueFake) PublishDocumentUploaded(_ context.Context, agreementID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, agreementID)
	return nil
}

func (f *queueFake) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return nil
}

type textExtractorFake struct {
	text string
	err  error
}

func (f *textExtractorFake) Extract(context.Context, *domain.Agreement) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type classifierFake struct {
	docType domain.DocumentType
	err     error
}

func (f *classifierFake) Classify(context.Context, string) (domain.DocumentType, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.docType, nil
}

type fieldExtractorFake struct {
	fields map[string]any
	err    error
}

func (f *fieldExtractorFake) ExtractFields(context.Context, string, domain.DocumentType) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

type riskDetectorFake struct {
	flags  []domain.RiskFlag
	err    error
	called bool
}

func (f *riskDetectorFake) DetectRisks(context.Context, string, map[string]any) ([]domain.RiskFlag, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.flags, nil
}

type answerGeneratorFake struct {
	answer string
	err    error
}

func (f *answerGeneratorFake) Answer(context.Context, string, string, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
