package compiler

import (
	"fmt"
	"strconv"

	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/finance"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/utils"
)

// yearLabels back-computes column years from the series length,
// anchoring the most recent point to the reference year.
func yearLabels(n, refYear int) []string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = strconv.Itoa(refYear - n + i + 1)
	}
	return labels
}

// FinancialTable builds the metric-per-row historical table: one
// column per year plus a trailing CAGR column. Rows for absent series
// are omitted; a degenerate series gets an "N/A" CAGR cell. Every row
// is aligned to the revenue series length — all series end at the
// reference year, so a shorter one is missing its oldest points and
// gets "N/A" under those columns, while a longer one is cut to its
// most recent values.
func FinancialTable(fin *models.FinancialAnalysis, refYear int) *models.Table {
	years := len(fin.Revenue)
	if years == 0 {
		return nil
	}

	header := append([]string{"Metric"}, yearLabels(years, refYear)...)
	header = append(header, "CAGR")

	table := &models.Table{Header: header}
	addRow := func(label string, series []float64) {
		if len(series) == 0 {
			return
		}
		if len(series) > years {
			series = series[len(series)-years:]
		}

		row := make([]string, 0, years+2)
		row = append(row, label)
		for i := 0; i < years-len(series); i++ {
			row = append(row, "N/A")
		}
		for _, v := range series {
			row = append(row, utils.FormatCurrencyCell(v))
		}
		row = append(row, growthCell(series))
		table.Rows = append(table.Rows, row)
	}

	addRow("Revenue", fin.Revenue)
	addRow("EBITDA", fin.EBITDA)
	addRow("Net Income", fin.NetIncome)
	addRow("Cash Flow", fin.CashFlow)
	return table
}

func growthCell(series []float64) string {
	if len(series) < 2 || series[0] <= 0 || series[len(series)-1] <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", finance.CAGR(series)*100)
}

// ROITable builds the three-scenario returns table.
func ROITable(s models.ScenarioSet) *models.Table {
	row := func(name string, sc models.ROIScenario) []string {
		return []string{
			name,
			fmt.Sprintf("%.0f%%", sc.IRR),
			fmt.Sprintf("%.1fx", sc.Multiple),
			fmt.Sprintf("%.1f", sc.PaybackYears),
		}
	}
	return &models.Table{
		Header: []string{"Scenario", "IRR", "Multiple", "Payback (years)"},
		Rows: [][]string{
			row("Base Case", s.BaseCase),
			row("Optimistic", s.Optimistic),
			row("Conservative", s.Conservative),
		},
	}
}
