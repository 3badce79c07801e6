// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/venture-forecast/internal/projection"
	"github.com/iwvelando/venture-forecast/pkg/format"
	"github.com/iwvelando/venture-forecast/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, result *projection.Result) {
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "Net initial investment: $%.2f\n\n", result.NetInitialInvestment)

	fmt.Fprintf(w, "--- Income statement ---\n")
	fmt.Fprintf(w, "Year | Sales | Variable Costs | Fixed Costs | EBITDA | Depreciation | Interest | Taxes | Net Income\n")
	fmt.Fprintf(w, "____ | _____ | ______________ | ___________ | ______ | ____________ | ________ | _____ | __________\n")
	for _, s := range result.AnnualSummaries {
		is := s.IncomeStatement
		_, _ = p.Fprintf(w, "%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			s.Year, is.Sales, is.VariableCosts, is.FixedCosts, is.EBITDA, is.Depreciation, is.Interest, is.Taxes, is.NetIncome)
	}

	fmt.Fprintf(w, "\n--- Cash flow ---\n")
	fmt.Fprintf(w, "Year | Net Cash Flow | Cumulative | Principal | Salvage\n")
	fmt.Fprintf(w, "____ | _____________ | __________ | _________ | _______\n")
	for i, point := range result.AnnualCashFlowSeries {
		principal, salvage := 0.0, 0.0
		if i > 0 {
			principal = result.AnnualSummaries[i-1].CashFlow.PrincipalRepayment
			salvage = result.AnnualSummaries[i-1].CashFlow.SalvageValue
		}
		_, _ = p.Fprintf(w, "%d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			point.Year, point.NetCashFlow, point.CumulativeCashFlow, principal, salvage)
	}

	fmt.Fprintf(w, "\n--- Break-even ---\n")
	fmt.Fprintf(w, "Year | Sales | Break-even Sales | Break-even %% of Sales\n")
	fmt.Fprintf(w, "____ | _____ | ________________ | _____________________\n")
	for _, s := range result.AnnualSummaries {
		_, _ = p.Fprintf(w, "%d | $%.2f | %s | %s\n",
			s.Year, s.BreakEven.Sales, breakEvenCurrency(s.BreakEven.Amount.Unreachable, s.BreakEven.Amount.Amount),
			s.BreakEven.Percent.String())
	}

	metrics := result.FinancialMetrics
	fmt.Fprintf(w, "\n--- Financial metrics ---\n")
	fmt.Fprintf(w, "NPV: %s\n", format.Currency(metrics.NPV))
	fmt.Fprintf(w, "IRR: %s\n", format.OptionalPercent(metrics.IRR))
	fmt.Fprintf(w, "Meets minimum IRR: %t\n", metrics.MeetsMinimumIRR)
	fmt.Fprintf(w, "Payback period: %s\n", metrics.Payback)
	fmt.Fprintf(w, "Cost-benefit ratio: %.2f\n", metrics.CostBenefitRatio)
	fmt.Fprintf(w, "ROI: %s\n", format.OptionalPercent(metrics.ROI))
	if metrics.IncrementalNPV != nil {
		fmt.Fprintf(w, "Incremental NPV: %s\n", format.Currency(*metrics.IncrementalNPV))
		fmt.Fprintf(w, "Incremental IRR: %s\n", format.OptionalPercent(metrics.IncrementalIRR))
	}
}

// GoalSeekFormat writes one line per goal-seek answer with any notes below it.
func GoalSeekFormat(w io.Writer, summaries []optimization.Summary) {
	if len(summaries) == 0 {
		return
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "\n--- Goal seek ---\n")
	fmt.Fprintf(w, "Target | Field | Goal | Original | Value | Headroom | Iterations | Converged\n")
	fmt.Fprintf(w, "______ | _____ | ____ | ________ | _____ | ________ | __________ | _________\n")
	for _, s := range summaries {
		_, _ = p.Fprintf(w, "%s | %s | %s | %.2f | %.2f | %.2f | %d | %t\n",
			s.TargetName, s.Field, s.Goal, s.Original, s.Value, s.Headroom, s.Iterations, s.Converged)
		for _, note := range s.Notes {
			fmt.Fprintf(w, "  note: %s\n", note)
		}
	}
}

func breakEvenCurrency(unreachable bool, amount float64) string {
	if unreachable {
		return "unreachable"
	}
	return format.Currency(amount)
}

// csvHeader lists the columns shared by annual and monthly rows.
var csvHeader = []string{
	"scope", "year", "month", "period",
	"sales", "variable costs", "fixed costs", "gross profit", "ebitda", "depreciation", "ebit",
	"interest", "ebt", "taxes", "net income", "principal repayment", "salvage value",
	"net cash flow", "cumulative cash flow", "break-even sales",
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CsvRecords returns the header followed by one row per project year and then
// one row per project month.
func CsvRecords(result *projection.Result) [][]string {
	records := [][]string{csvHeader}

	for i, s := range result.AnnualSummaries {
		is := s.IncomeStatement
		cumulative := 0.0
		if i+1 < len(result.AnnualCashFlowSeries) {
			cumulative = result.AnnualCashFlowSeries[i+1].CumulativeCashFlow
		}
		records = append(records, []string{
			"annual", strconv.Itoa(s.Year), "", fmt.Sprintf("Y%d", s.Year),
			money(is.Sales), money(is.VariableCosts), money(is.FixedCosts), money(is.GrossProfit),
			money(is.EBITDA), money(is.Depreciation), money(is.EBIT), money(is.Interest),
			money(is.EBT), money(is.Taxes), money(is.NetIncome),
			money(s.CashFlow.PrincipalRepayment), money(s.CashFlow.SalvageValue),
			money(s.CashFlow.NetCashFlow), money(cumulative), s.BreakEven.Amount.String(),
		})
	}

	for i, m := range result.MonthlyBreakdown {
		cumulative := 0.0
		if i < len(result.MonthlyCashFlowSeries) {
			cumulative = result.MonthlyCashFlowSeries[i].CumulativeCashFlow
		}
		records = append(records, []string{
			"monthly", strconv.Itoa(m.Year), strconv.Itoa(m.Month), m.Period,
			money(m.Sales), money(m.VariableCosts), money(m.FixedCosts), money(m.GrossProfit),
			money(m.EBITDA), money(m.Depreciation), money(m.EBIT), money(m.Interest),
			money(m.EBT), money(m.Taxes), money(m.NetIncome),
			money(m.PrincipalRepayment), money(0),
			money(m.NetCashFlow), money(cumulative), m.BreakEvenAmount.String(),
		})
	}

	return records
}

// CsvFormat writes the result in comma-separated value format.
func CsvFormat(w io.Writer, result *projection.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(CsvRecords(result)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CsvString renders the result as CSV.
func CsvString(result *projection.Result) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat writes the result as indented JSON.
func JSONFormat(w io.Writer, result *projection.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
