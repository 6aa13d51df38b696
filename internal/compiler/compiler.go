// Package compiler assembles metric, market, ROI, and narrative
// outputs into the structured document model consumed by the layout
// engine. Assembly is deterministic: identical inputs compile to
// identical documents apart from the explicit GeneratedAt timestamp.
package compiler

import (
	"time"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Compiler — configuration and construction
// ════════════════════════════════════════════════════════════════════

// HighlightFunc produces the investment-highlights list for a
// document. The default returns a fixed policy list; callers may
// inject a metrics-driven strategy without changing the contract.
type HighlightFunc func(fin *models.FinancialAnalysis, market *models.MarketAnalysis) []string

// Compiler builds compiled documents. It holds only immutable
// configuration; one Compiler serves any number of concurrent
// requests.
type Compiler struct {
	highlights HighlightFunc
	refYear    int // 0 means anchor tables to the wall-clock year
	now        func() time.Time
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithHighlightFunc replaces the investment-highlights strategy.
func WithHighlightFunc(f HighlightFunc) Option {
	return func(c *Compiler) { c.highlights = f }
}

// WithReferenceYear anchors the most recent data point of every table
// and chart to the given year instead of the wall clock.
func WithReferenceYear(year int) Option {
	return func(c *Compiler) { c.refYear = year }
}

// WithClock overrides the GeneratedAt clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// New creates a Compiler with the default policy configuration.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		highlights: DefaultHighlights,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) referenceYear() int {
	if c.refYear != 0 {
		return c.refYear
	}
	return c.now().Year()
}

// ════════════════════════════════════════════════════════════════════
// Compile
// ════════════════════════════════════════════════════════════════════

// Input bundles the per-stage outputs feeding one compilation.
type Input struct {
	Title            string
	Company          models.Company
	Financial        *models.FinancialAnalysis
	Market           *models.MarketAnalysis
	ROI              *models.ROIProjections
	ExecutiveSummary string
}

// Compile assembles the document model. Sections are rebuilt from
// scratch on every call; there is no incremental mutation.
func (c *Compiler) Compile(in Input) *models.CompiledDocument {
	title := in.Title
	if title == "" {
		title = "Confidential Information Memorandum"
	}

	year := c.referenceYear()
	sections := map[string]models.DocumentSection{
		models.SectionExecutiveSummary: {
			Title:   "Executive Summary",
			Content: in.ExecutiveSummary,
		},
		models.SectionFinancialAnalysis: {
			Title:      "Financial Analysis",
			Content:    in.Financial.Content,
			Highlights: in.Financial.Highlights,
			Table:      FinancialTable(in.Financial, year),
			ChartURL:   FinancialChartURL(in.Financial, year),
		},
		models.SectionMarketAnalysis: {
			Title:      "Market Analysis",
			Content:    in.Market.Content,
			Highlights: in.Market.Advantages,
		},
		models.SectionROIProjections: {
			Title:     "ROI Projections",
			Content:   in.ROI.Content,
			Table:     ROITable(in.ROI.Scenarios),
			Scenarios: &in.ROI.Scenarios,
		},
	}

	return &models.CompiledDocument{
		Title:                title,
		Sections:             sections,
		CompanyOverview:      in.Company,
		InvestmentHighlights: c.highlights(in.Financial, in.Market),
		KeyHighlights:        keyHighlights(in.Financial, in.Market),
		RiskFactors:          riskFactors(in.Market),
		GeneratedAt:          c.now().UTC(),
	}
}

// Validate checks that every required section is present and carries
// content. A failing document is flagged, not rejected — the caller
// decides whether a partial document is acceptable.
func Validate(doc *models.CompiledDocument) models.ValidationResult {
	var missing []string
	for _, name := range models.RequiredSections() {
		section, ok := doc.Sections[name]
		if !ok || section.Content == "" {
			missing = append(missing, name)
		}
	}
	return models.ValidationResult{
		Valid:           len(missing) == 0,
		MissingSections: missing,
	}
}

// ════════════════════════════════════════════════════════════════════
// Highlights and risk factors
// ════════════════════════════════════════════════════════════════════

// DefaultHighlights is the fixed investment-highlights policy list.
// Deliberately not derived from the data.
func DefaultHighlights(*models.FinancialAnalysis, *models.MarketAnalysis) []string {
	return []string{
		"Strong revenue growth with consistent expansion trajectory",
		"Improving profitability margins demonstrating operational efficiency",
		"Large and growing addressable market with favorable dynamics",
		"Differentiated competitive positioning with sustainable advantages",
		"Experienced management team with proven execution track record",
	}
}

// keyHighlights extracts the headline facts: the first two financial
// highlights plus formatted market size and growth.
func keyHighlights(fin *models.FinancialAnalysis, market *models.MarketAnalysis) []string {
	var highlights []string

	finHighlights := fin.Highlights
	if len(finHighlights) > 2 {
		finHighlights = finHighlights[:2]
	}
	highlights = append(highlights, finHighlights...)

	if market.MarketSize > 0 {
		highlights = append(highlights,
			utils.FormatCurrency(market.MarketSize)+" addressable market")
	}
	if market.GrowthRate > 0 {
		highlights = append(highlights,
			utils.FormatPercent(market.GrowthRate)+" annual market growth")
	}
	return highlights
}

// riskFactors returns the fixed four-item catalog augmented by any
// risk strings surfaced by the market-analysis stage.
func riskFactors(market *models.MarketAnalysis) []models.RiskFactor {
	risks := []models.RiskFactor{
		{
			Title:       "Market Competition",
			Description: "Competitive pressure from established players and new entrants",
		},
		{
			Title:       "Economic Conditions",
			Description: "Macroeconomic factors and regulatory changes may impact growth",
		},
		{
			Title:       "Technology Risk",
			Description: "Rapid technology evolution requires continuous innovation",
		},
		{
			Title:       "Key Personnel",
			Description: "Dependence on key management and technical personnel",
		},
	}
	for _, r := range market.Risks {
		risks = append(risks, models.RiskFactor{Title: r})
	}
	return risks
}
