package finance

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/utils"
)

// Analyze runs the full metrics pass over the supplied financials.
// Absent series are replaced with the canonical defaults (EBITDA is
// derived from net income when missing), so the result always carries
// complete metrics and four populated series.
func Analyze(in models.FinancialInput) *models.FinancialAnalysis {
	revenue := in.Revenue
	if len(revenue) == 0 {
		revenue = DefaultRevenue()
	}
	netIncome := in.NetIncome
	if len(netIncome) == 0 {
		netIncome = DefaultNetIncome()
	}
	ebitda := in.EBITDA
	if len(ebitda) == 0 {
		ebitda = DeriveEBITDA(netIncome)
	}
	cashFlow := in.CashFlow
	if len(cashFlow) == 0 {
		cashFlow = DefaultCashFlow()
	}

	metrics := models.FinancialMetrics{
		CAGR:          CAGR(revenue),
		ProfitMargin:  ProfitMargin(netIncome, revenue),
		EBITDAMargin:  EBITDAMargin(ebitda, revenue),
		RevenueGrowth: RevenueGrowth(revenue),
	}
	metrics.Trend = Trend(metrics.CAGR)

	log.Info().
		Float64("cagr", metrics.CAGR).
		Float64("profit_margin", metrics.ProfitMargin).
		Msg("financial analysis completed")

	return &models.FinancialAnalysis{
		Content:    analysisContent(metrics, revenue, netIncome, cashFlow),
		Highlights: analysisHighlights(metrics),
		GrowthRate: utils.FormatPercent(metrics.CAGR * 100),
		Trend:      metrics.Trend,
		Revenue:    revenue,
		NetIncome:  netIncome,
		EBITDA:     ebitda,
		CashFlow:   cashFlow,
		Metrics:    metrics,
	}
}

func analysisHighlights(m models.FinancialMetrics) []string {
	return []string{
		fmt.Sprintf("%.1f%% revenue CAGR", m.CAGR*100),
		fmt.Sprintf("%.1f%% profit margin", m.ProfitMargin),
		"Strong cash flow generation",
		"Improving operational efficiency",
	}
}

func analysisContent(m models.FinancialMetrics, revenue, netIncome, cashFlow []float64) string {
	return fmt.Sprintf(`**Financial Performance Analysis**

**Revenue Growth:**
- 3-Year Revenue CAGR: %.1f%%
- Total Growth: %.1f%% over the period
- Consistent upward trajectory demonstrating strong market demand

**Profitability Metrics:**
- Current Net Profit Margin: %.1f%%
- Improving operational efficiency
- Strong cash generation capabilities

**Key Financial Highlights:**
- Revenue: %s (latest year)
- Net Income: %s
- Cash Flow: %s
- Healthy financial fundamentals with growth trajectory

**Investment Strengths:**
- Consistent revenue growth across all periods
- Improving profitability margins
- Strong cash flow generation
- Scalable business model with operational leverage`,
		m.CAGR*100,
		m.RevenueGrowth,
		m.ProfitMargin,
		utils.FormatMillions(revenue[len(revenue)-1]),
		utils.FormatMillions(netIncome[len(netIncome)-1]),
		utils.FormatMillions(cashFlow[len(cashFlow)-1]))
}
