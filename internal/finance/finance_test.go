package finance

import (
	"math"
	"testing"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

func almost(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestCAGRDegenerateInputs(t *testing.T) {
	cases := [][]float64{
		nil,
		{},
		{100},
		{0, 200},
		{-50, 200},
		{100, 0},
		{100, -10},
	}
	for _, series := range cases {
		if got := CAGR(series); got != 0 {
			t.Errorf("CAGR(%v) = %v, want 0", series, got)
		}
	}
}

func TestCAGRTwoPoints(t *testing.T) {
	got := CAGR([]float64{1_000_000, 1_210_000})
	if !almost(got, 0.21) {
		t.Errorf("CAGR = %v, want 0.21", got)
	}
}

func TestCAGRMultiPeriod(t *testing.T) {
	// 10% per year over two periods.
	got := CAGR([]float64{100, 110, 121})
	if !almost(got, 0.1) {
		t.Errorf("CAGR = %v, want 0.1", got)
	}
	// 21% per year over two periods.
	got = CAGR([]float64{100, 121, 146.41})
	if !almost(got, 0.21) {
		t.Errorf("CAGR = %v, want 0.21", got)
	}
}

func TestMargins(t *testing.T) {
	revenue := []float64{1_000_000, 2_000_000}
	netIncome := []float64{100_000, 300_000}

	if got := ProfitMargin(netIncome, revenue); !almost(got, 15) {
		t.Errorf("ProfitMargin = %v, want 15", got)
	}
	if got := ProfitMargin(nil, revenue); got != 0 {
		t.Errorf("ProfitMargin with empty income = %v, want 0", got)
	}
	if got := ProfitMargin(netIncome, []float64{100, 0}); got != 0 {
		t.Errorf("ProfitMargin with zero revenue = %v, want 0", got)
	}
	if got := EBITDAMargin([]float64{500_000}, revenue); !almost(got, 25) {
		t.Errorf("EBITDAMargin = %v, want 25", got)
	}
}

func TestRevenueGrowth(t *testing.T) {
	if got := RevenueGrowth([]float64{100, 150}); !almost(got, 50) {
		t.Errorf("RevenueGrowth = %v, want 50", got)
	}
	if got := RevenueGrowth([]float64{100}); got != 0 {
		t.Errorf("single point growth = %v, want 0", got)
	}
	if got := RevenueGrowth([]float64{0, 150}); got != 0 {
		t.Errorf("zero start growth = %v, want 0", got)
	}
}

func TestTrendBuckets(t *testing.T) {
	cases := []struct {
		cagr float64
		want models.GrowthTrend
	}{
		{0.30, models.TrendStrong},
		{0.151, models.TrendStrong},
		{0.15, models.TrendModerate},
		{0.06, models.TrendModerate},
		{0.05, models.TrendSteady},
		{0.0, models.TrendSteady},
		{-0.2, models.TrendSteady},
	}
	for _, c := range cases {
		if got := Trend(c.cagr); got != c.want {
			t.Errorf("Trend(%v) = %q, want %q", c.cagr, got, c.want)
		}
	}
}

func TestProject(t *testing.T) {
	// 100 growing at its own CAGR (10%) for 3 years.
	got := Project([]float64{100, 110, 121}, 3)
	want := []float64{133.1, 146.41, 161.051}
	if len(got) != len(want) {
		t.Fatalf("expected %d projections, got %d", len(want), len(got))
	}
	for i := range want {
		if !almost(got[i], want[i]) {
			t.Errorf("projection[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Project(nil, 5); got != nil {
		t.Errorf("empty series projection = %v, want nil", got)
	}
}

func TestROIProjectionsEmptySeries(t *testing.T) {
	// Empty revenue means zero CAGR adjustment: base IRR lands on
	// exactly 22.0.
	roi := ROIProjections(nil, 5_000_000, 5)
	if roi.Scenarios.BaseCase.IRR != 22.0 {
		t.Errorf("base IRR = %v, want 22.0", roi.Scenarios.BaseCase.IRR)
	}
	if roi.Scenarios.Optimistic.IRR != 28.0 {
		t.Errorf("optimistic IRR = %v, want 28.0", roi.Scenarios.Optimistic.IRR)
	}
	if roi.Scenarios.Conservative.IRR != 18.0 {
		t.Errorf("conservative IRR = %v, want 18.0", roi.Scenarios.Conservative.IRR)
	}
	if roi.Scenarios.BaseCase.ExitValuation != 21_000_000 {
		t.Errorf("base exit = %v, want 21000000", roi.Scenarios.BaseCase.ExitValuation)
	}
}

func TestROIProjectionsAdjustmentCapped(t *testing.T) {
	// 100% CAGR would adjust by 50 points; the cap holds it at 10.
	roi := ROIProjections([]float64{100, 200}, 1_000_000, 5)
	if roi.Scenarios.BaseCase.IRR != 32.0 {
		t.Errorf("capped base IRR = %v, want 32.0", roi.Scenarios.BaseCase.IRR)
	}
}

func TestROIProjectionsDefaults(t *testing.T) {
	roi := ROIProjections(nil, 0, 0)
	if roi.Assumptions.InvestmentAmount != 5_000_000 {
		t.Errorf("default investment = %v, want 5000000", roi.Assumptions.InvestmentAmount)
	}
	if roi.Assumptions.TimeHorizonYears != 5 {
		t.Errorf("default horizon = %v, want 5", roi.Assumptions.TimeHorizonYears)
	}
	if roi.Assumptions.ExitStrategy != "Strategic acquisition or IPO" {
		t.Errorf("unexpected exit strategy %q", roi.Assumptions.ExitStrategy)
	}
}

func TestAnalyzeSubstitutesDefaults(t *testing.T) {
	a := Analyze(models.FinancialInput{})

	if len(a.Revenue) != 5 || a.Revenue[4] != 3_200_000 {
		t.Errorf("expected default revenue series, got %v", a.Revenue)
	}
	if len(a.EBITDA) != 5 || a.EBITDA[0] != 270_000 {
		t.Errorf("expected EBITDA derived as 1.5x net income, got %v", a.EBITDA)
	}
	if len(a.CashFlow) != 5 {
		t.Errorf("expected default cash flow series, got %v", a.CashFlow)
	}
	if a.Metrics.CAGR <= 0 {
		t.Errorf("expected positive CAGR on default data, got %v", a.Metrics.CAGR)
	}
	if a.Metrics.Trend == "" {
		t.Error("expected trend classification")
	}
	if len(a.Highlights) != 4 {
		t.Errorf("expected 4 highlights, got %d", len(a.Highlights))
	}
}

func TestAnalyzeUsesSuppliedSeries(t *testing.T) {
	in := models.FinancialInput{
		Revenue:   []float64{1_000_000, 2_000_000},
		NetIncome: []float64{100_000, 400_000},
	}
	a := Analyze(in)

	if a.Metrics.ProfitMargin != 20 {
		t.Errorf("profit margin = %v, want 20", a.Metrics.ProfitMargin)
	}
	if !almost(a.Metrics.RevenueGrowth, 100) {
		t.Errorf("revenue growth = %v, want 100", a.Metrics.RevenueGrowth)
	}
	// Supplied net income drives the derived EBITDA.
	if a.EBITDA[1] != 600_000 {
		t.Errorf("derived EBITDA = %v, want 600000", a.EBITDA[1])
	}
}
