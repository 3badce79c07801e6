package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/iwvelando/venture-forecast/internal/projection"
	"github.com/iwvelando/venture-forecast/pkg/format"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX workbook.
const (
	SheetAnnual  = "Annual"
	SheetMonthly = "Monthly"
	SheetMetrics = "Metrics"
	SheetLoans   = "Loans"
)

// NewWorkbook builds an XLSX workbook with annual, monthly, metrics and loan
// sheets. The caller must close the returned file.
func NewWorkbook(result *projection.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetAnnual); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name annual sheet: %w", err)
	}
	for _, sheet := range []string{SheetMonthly, SheetMetrics, SheetLoans} {
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	writers := []func(*excelize.File, *projection.Result) error{
		writeAnnualSheet,
		writeMonthlySheet,
		writeMetricsSheet,
		writeLoansSheet,
	}
	for _, write := range writers {
		if err := write(f, result); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	for _, sheet := range []string{SheetAnnual, SheetMonthly, SheetMetrics, SheetLoans} {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}

	return f, nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeAnnualSheet(f *excelize.File, result *projection.Result) error {
	rows := [][]interface{}{{
		"Year", "Sales", "Variable Costs", "Fixed Costs", "Gross Profit", "EBITDA", "Depreciation", "EBIT",
		"Interest", "EBT", "Taxes", "Net Income", "Principal Repayment", "Salvage Value", "Net Cash Flow",
		"Cumulative Cash Flow", "Break-even Sales",
	}}
	for i, s := range result.AnnualSummaries {
		is := s.IncomeStatement
		rows = append(rows, []interface{}{
			s.Year, is.Sales, is.VariableCosts, is.FixedCosts, is.GrossProfit, is.EBITDA, is.Depreciation, is.EBIT,
			is.Interest, is.EBT, is.Taxes, is.NetIncome, s.CashFlow.PrincipalRepayment, s.CashFlow.SalvageValue,
			s.CashFlow.NetCashFlow, result.AnnualCashFlowSeries[i+1].CumulativeCashFlow, s.BreakEven.Amount.String(),
		})
	}
	return setRows(f, SheetAnnual, rows)
}

func writeMonthlySheet(f *excelize.File, result *projection.Result) error {
	rows := [][]interface{}{{
		"Period", "Year", "Month", "Sales", "Variable Costs", "Fixed Costs", "EBITDA", "Depreciation",
		"Interest", "Taxes", "Net Income", "Principal Repayment", "Net Cash Flow", "Cumulative Cash Flow",
		"Break-even Sales",
	}}
	for i, m := range result.MonthlyBreakdown {
		rows = append(rows, []interface{}{
			m.Period, m.Year, m.Month, m.Sales, m.VariableCosts, m.FixedCosts, m.EBITDA, m.Depreciation,
			m.Interest, m.Taxes, m.NetIncome, m.PrincipalRepayment, m.NetCashFlow,
			result.MonthlyCashFlowSeries[i].CumulativeCashFlow, m.BreakEvenAmount.String(),
		})
	}
	return setRows(f, SheetMonthly, rows)
}

func writeMetricsSheet(f *excelize.File, result *projection.Result) error {
	m := result.FinancialMetrics
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Net Initial Investment", result.NetInitialInvestment},
		{"NPV", m.NPV},
		{"IRR", format.OptionalPercent(m.IRR)},
		{"Meets Minimum IRR", m.MeetsMinimumIRR},
		{"Payback Period", m.Payback.String()},
		{"Cost-Benefit Ratio", m.CostBenefitRatio},
		{"ROI", format.OptionalPercent(m.ROI)},
	}
	if m.IncrementalNPV != nil {
		rows = append(rows,
			[]interface{}{"Incremental NPV", *m.IncrementalNPV},
			[]interface{}{"Incremental IRR", format.OptionalPercent(m.IncrementalIRR)},
		)
	}
	return setRows(f, SheetMetrics, rows)
}

func writeLoansSheet(f *excelize.File, result *projection.Result) error {
	ids := make([]string, 0, len(result.LoanSchedules))
	for id := range result.LoanSchedules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := [][]interface{}{{"Loan", "Month", "Payment", "Principal", "Interest", "Remaining Principal"}}
	for _, id := range ids {
		for _, p := range result.LoanSchedules[id] {
			rows = append(rows, []interface{}{id, p.Month, p.Payment, p.Principal, p.Interest, p.RemainingPrincipal})
		}
	}
	return setRows(f, SheetLoans, rows)
}

// WriteXlsx writes the workbook to w.
func WriteXlsx(w io.Writer, result *projection.Result) error {
	f, err := NewWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// XlsxBytes renders the workbook in memory.
func XlsxBytes(result *projection.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXlsx(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
