// Package finance implements the deterministic financial metrics
// engine: pure functions over chronological time series (revenue, net
// income, EBITDA, cash flow) with defined sentinel values for every
// degenerate input. No function in this package performs I/O or
// returns an error — the engine is total over its input domain.
package finance

import (
	"math"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// Trend classification thresholds. Policy constants, not derived.
const (
	trendStrongAbove   = 0.15
	trendModerateAbove = 0.05
)

// CAGR computes the compound annual growth rate implied by the first
// and last value of a chronological series:
//
//	(last/first)^(1/(n-1)) - 1
//
// A series with fewer than two points, or a non-positive first or last
// value, yields 0.0 — a documented degenerate case, not an error.
func CAGR(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	first, last := series[0], series[len(series)-1]
	if first <= 0 || last <= 0 {
		return 0
	}
	periods := float64(len(series) - 1)
	return math.Pow(last/first, 1/periods) - 1
}

// ProfitMargin returns the net profit margin for the most recent
// period, as a percentage. Empty series or non-positive latest revenue
// yield 0.0.
func ProfitMargin(netIncome, revenue []float64) float64 {
	return latestMargin(netIncome, revenue)
}

// EBITDAMargin returns the EBITDA margin for the most recent period,
// as a percentage. Empty series or non-positive latest revenue yield
// 0.0.
func EBITDAMargin(ebitda, revenue []float64) float64 {
	return latestMargin(ebitda, revenue)
}

func latestMargin(numerator, revenue []float64) float64 {
	if len(numerator) == 0 || len(revenue) == 0 {
		return 0
	}
	latestRevenue := revenue[len(revenue)-1]
	if latestRevenue <= 0 {
		return 0
	}
	return numerator[len(numerator)-1] / latestRevenue * 100
}

// RevenueGrowth returns the total percentage change from the first to
// the last point of the series. Fewer than two points, or a
// non-positive first value, yields 0.0.
func RevenueGrowth(revenue []float64) float64 {
	if len(revenue) < 2 {
		return 0
	}
	first, last := revenue[0], revenue[len(revenue)-1]
	if first <= 0 {
		return 0
	}
	return (last/first - 1) * 100
}

// Trend classifies a CAGR (decimal) into a growth-trend bucket.
func Trend(cagr float64) models.GrowthTrend {
	switch {
	case cagr > trendStrongAbove:
		return models.TrendStrong
	case cagr > trendModerateAbove:
		return models.TrendModerate
	default:
		return models.TrendSteady
	}
}

// Project compounds the last historical value forward at the series'
// own CAGR, returning one projected value per future year. An empty
// series projects to nil.
func Project(historical []float64, years int) []float64 {
	return ProjectAt(historical, years, CAGR(historical))
}

// ProjectAt is Project with an explicit growth-rate override.
func ProjectAt(historical []float64, years int, growthRate float64) []float64 {
	if len(historical) == 0 || years <= 0 {
		return nil
	}
	last := historical[len(historical)-1]
	projected := make([]float64, years)
	for year := 1; year <= years; year++ {
		projected[year-1] = last * math.Pow(1+growthRate, float64(year))
	}
	return projected
}

// Canonical fallback series, substituted when a caller supplies no
// data so downstream stages always receive complete metrics. Returned
// as fresh slices so callers can't mutate the canon.

// DefaultRevenue returns the canonical five-year revenue series.
func DefaultRevenue() []float64 {
	return []float64{1_200_000, 1_500_000, 1_800_000, 2_500_000, 3_200_000}
}

// DefaultNetIncome returns the canonical five-year net income series.
func DefaultNetIncome() []float64 {
	return []float64{180_000, 225_000, 270_000, 375_000, 480_000}
}

// DefaultCashFlow returns the canonical five-year cash flow series.
func DefaultCashFlow() []float64 {
	return []float64{240_000, 300_000, 360_000, 500_000, 640_000}
}

// DeriveEBITDA approximates EBITDA as 1.5x net income, truncated to
// whole currency units. Used when no EBITDA series is supplied.
func DeriveEBITDA(netIncome []float64) []float64 {
	ebitda := make([]float64, len(netIncome))
	for i, n := range netIncome {
		ebitda[i] = math.Trunc(n * 1.5)
	}
	return ebitda
}
