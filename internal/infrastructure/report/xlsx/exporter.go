// Package xlsx renders an agreement's obligations and upcoming payment
// periods as a rent-roll workbook.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
)

const (
	obligationsSheet = "Obligations"
	paymentsSheet    = "Payment Periods"

	dateLayout = "2006-01-02"
)

type Exporter struct {
	agreements  ports.AgreementRepository
	obligations ports.ObligationRepository
	periods     ports.PaymentPeriodRepository
}

func NewExporter(
	agreements ports.AgreementRepository,
	obligations ports.ObligationRepository,
	periods ports.PaymentPeriodRepository,
) *Exporter {
	return &Exporter{
		agreements:  agreements,
		obligations: obligations,
		periods:     periods,
	}
}

func (e *Exporter) Export(ctx context.Context, agreementID string) ([]byte, error) {
	ag, err := e.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("fetch agreement by id: %w", err)
	}
	obligations, err := e.obligations.ListByAgreement(ctx, ag.ID)
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	periods, err := e.periods.ListUpcomingByAgreement(ctx, ag.ID)
	if err != nil {
		return nil, fmt.Errorf("list payment periods: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeObligations(f, obligations); err != nil {
		return nil, err
	}
	if err := e.writePeriods(f, obligations, periods); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writeObligations(f *excelize.File, obligations []domain.Obligation) error {
	if err := f.SetSheetName("Sheet1", obligationsSheet); err != nil {
		return fmt.Errorf("rename obligations sheet: %w", err)
	}

	headers := []any{
		"Type", "Frequency", "Amount", "Formula", "Due Day",
		"Start Date", "End Date", "Escalation %", "Escalation Every (Years)", "Next Escalation",
	}
	if err := writeRow(f, obligationsSheet, 1, headers); err != nil {
		return err
	}

	for i, ob := range obligations {
		row := []any{
			string(ob.Type),
			string(ob.Frequency),
			floatCell(ob.Amount),
			stringCell(ob.Formula),
			intCell(ob.DueDayOfMonth),
			dateCell(ob.StartDate),
			dateCell(ob.EndDate),
			floatCell(ob.EscalationPct),
			intCell(ob.EscalationFreqYears),
			dateCell(ob.NextEscalationDate),
		}
		if err := writeRow(f, obligationsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writePeriods(f *excelize.File, obligations []domain.Obligation, periods []domain.PaymentPeriod) error {
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return fmt.Errorf("create payments sheet: %w", err)
	}

	typeByObligation := make(map[string]domain.ObligationType, len(obligations))
	for _, ob := range obligations {
		typeByObligation[ob.ID] = ob.Type
	}

	headers := []any{"Obligation", "Period", "Due Date", "Due Amount", "Status", "Paid Amount"}
	if err := writeRow(f, paymentsSheet, 1, headers); err != nil {
		return err
	}

	for i, p := range periods {
		row := []any{
			string(typeByObligation[p.ObligationID]),
			fmt.Sprintf("%04d-%02d", p.PeriodYear, p.PeriodMonth),
			p.DueDate.Format(dateLayout),
			floatCell(p.DueAmount),
			string(p.Status),
			p.PaidAmount,
		}
		if err := writeRow(f, paymentsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func stringCell(v *string) any {
	if v == nil {
		return ""
	}
	return *v
}

func dateCell(v *time.Time) any {
	if v == nil {
		return ""
	}
	return v.Format(dateLayout)
}
