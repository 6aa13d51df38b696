// Package models defines the shared domain types for the CIM Automation
// Platform: financial time series and derived metrics, ROI scenarios,
// market data, and the compiled document model handed to the renderer.
package models

import "time"

// Section keys for the fixed, ordered set of document sections.
const (
	SectionExecutiveSummary  = "executiveSummary"
	SectionFinancialAnalysis = "financialAnalysis"
	SectionMarketAnalysis    = "marketAnalysis"
	SectionROIProjections    = "roiProjections"
)

// RequiredSections returns the section keys every compiled document
// must carry, in display order.
func RequiredSections() []string {
	return []string{
		SectionExecutiveSummary,
		SectionFinancialAnalysis,
		SectionMarketAnalysis,
		SectionROIProjections,
	}
}

// GrowthTrend classifies a CAGR into a fixed narrative bucket.
type GrowthTrend string

const (
	TrendStrong   GrowthTrend = "Strong growth"
	TrendModerate GrowthTrend = "Moderate growth"
	TrendSteady   GrowthTrend = "Steady growth"
)

// Company holds the caller-supplied company profile.
type Company struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

// FinancialInput carries the raw time series for one analysis request.
// Series are ordered oldest first; the engine never reorders them.
// EBITDA and CashFlow are optional — absent series are met with the
// documented default substitution, not errors.
type FinancialInput struct {
	Revenue   []float64 `json:"revenue"`
	NetIncome []float64 `json:"netIncome"`
	EBITDA    []float64 `json:"ebitda,omitempty"`
	CashFlow  []float64 `json:"cashFlow,omitempty"`
}

// MarketData carries caller-supplied industry figures. All fields are
// optional; the market-analysis stage substitutes documented defaults.
type MarketData struct {
	MarketSize  float64  `json:"marketSize,omitempty"`
	GrowthRate  float64  `json:"growthRate,omitempty"`
	Competitors []string `json:"competitors,omitempty"`
	Trends      []string `json:"trends,omitempty"`
}

// Assumptions holds the investment parameters for ROI projection.
type Assumptions struct {
	InvestmentAmount float64 `json:"investmentAmount"`
	TimeHorizonYears int     `json:"timeHorizon"`
	ExitStrategy     string  `json:"exitStrategy,omitempty"`
}

// FinancialMetrics is the immutable set of derived metrics, computed
// fresh on every analysis call. CAGR is a decimal (0.15 = 15%); the
// margins and growth are percentages.
type FinancialMetrics struct {
	CAGR          float64     `json:"cagr"`
	ProfitMargin  float64     `json:"profitMargin"`
	EBITDAMargin  float64     `json:"ebitdaMargin"`
	RevenueGrowth float64     `json:"revenueGrowth"`
	Trend         GrowthTrend `json:"trend"`
}

// FinancialAnalysis is the full output of the metrics engine: derived
// metrics, the rendered analysis narrative, highlight strings, and the
// (possibly default-substituted) series the numbers were computed from.
type FinancialAnalysis struct {
	Content    string           `json:"content"`
	Highlights []string         `json:"financialHighlights"`
	GrowthRate string           `json:"growthRate"`
	Trend      GrowthTrend      `json:"trend"`
	Revenue    []float64        `json:"revenue"`
	NetIncome  []float64        `json:"netIncome"`
	EBITDA     []float64        `json:"ebitda"`
	CashFlow   []float64        `json:"cashFlow"`
	Metrics    FinancialMetrics `json:"metrics"`
}

// MarketAnalysis is the output of the market-analysis stage.
type MarketAnalysis struct {
	Content     string   `json:"content"`
	MarketSize  float64  `json:"marketSize"`
	GrowthRate  float64  `json:"growthRate"`
	Opportunity string   `json:"opportunity"`
	Advantages  []string `json:"advantages"`
	Risks       []string `json:"risks"`
}

// ROIScenario is one named return projection. IRR is a percentage,
// Multiple is the exit-to-invested ratio, ExitValuation is in currency.
type ROIScenario struct {
	IRR           float64 `json:"irr"`
	Multiple      float64 `json:"multiple"`
	PaybackYears  float64 `json:"payback"`
	ExitValuation float64 `json:"exitValuation"`
}

// ScenarioSet holds the three scenarios that always co-exist.
type ScenarioSet struct {
	BaseCase     ROIScenario `json:"baseCase"`
	Optimistic   ROIScenario `json:"optimistic"`
	Conservative ROIScenario `json:"conservative"`
}

// ROIProjections is the output of the ROI stage.
type ROIProjections struct {
	Content     string      `json:"content"`
	Scenarios   ScenarioSet `json:"scenarios"`
	Assumptions Assumptions `json:"assumptions"`
}

// Table is a structured document table. Header cells render inverted;
// body rows render in fixed-width columns.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// DocumentSection is one named section of the compiled document.
type DocumentSection struct {
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Highlights []string     `json:"highlights,omitempty"`
	Table      *Table       `json:"table,omitempty"`
	ChartURL   string       `json:"chartUrl,omitempty"`
	Scenarios  *ScenarioSet `json:"scenarios,omitempty"`
}

// RiskFactor is a titled risk entry.
type RiskFactor struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CompiledDocument is the root aggregate produced by the compiler and
// handed to the renderer by value. GeneratedAt is the only field
// excluded from the comparable content: compiling identical inputs
// twice yields identical documents apart from it.
type CompiledDocument struct {
	Title                string                     `json:"title"`
	Sections             map[string]DocumentSection `json:"sections"`
	CompanyOverview      Company                    `json:"companyOverview"`
	InvestmentHighlights []string                   `json:"investmentHighlights"`
	KeyHighlights        []string                   `json:"keyHighlights"`
	RiskFactors          []RiskFactor               `json:"riskFactors"`
	GeneratedAt          time.Time                  `json:"generatedAt"`
}

// ValidationResult reports whether a compiled document carries all
// required sections. A document is never rejected outright — callers
// decide whether to proceed with a partial one.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	MissingSections []string `json:"missingSections"`
}

// GenerateRequest is the input to one document-generation run.
type GenerateRequest struct {
	Title       string         `json:"title,omitempty"`
	TemplateID  string         `json:"templateId,omitempty"`
	Company     Company        `json:"company"`
	Financials  FinancialInput `json:"financialData"`
	Market      MarketData     `json:"industryData"`
	Assumptions Assumptions    `json:"assumptions"`
}

// AnalysisEnvelope bundles the per-stage outputs alongside the compiled
// document. Confidence and Accuracy are policy constants selected by
// which narrative path executed, not measured quantities.
type AnalysisEnvelope struct {
	Financial        *FinancialAnalysis `json:"financialAnalysis"`
	Market           *MarketAnalysis    `json:"marketAnalysis"`
	ROI              *ROIProjections    `json:"roiProjections"`
	ExecutiveSummary string             `json:"executiveSummary"`
	NarrativeSource  string             `json:"narrativeSource"`
	Confidence       float64            `json:"confidence"`
	Accuracy         float64            `json:"accuracy"`
}

// GeneratedContent is the result of one generation request.
type GeneratedContent struct {
	Content  *CompiledDocument `json:"content"`
	Analysis AnalysisEnvelope  `json:"aiAnalysis"`
}

// FileResult records the outcome of processing one uploaded file.
type FileResult struct {
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	Processed    bool   `json:"processed"`
	Error        string `json:"error,omitempty"`
}

// ExtractedData is the merged result of spreadsheet ingestion.
type ExtractedData struct {
	Revenue   []float64    `json:"revenue"`
	NetIncome []float64    `json:"netIncome"`
	CashFlow  []float64    `json:"cashFlow"`
	EBITDA    []float64    `json:"ebitda"`
	Market    MarketData   `json:"marketData"`
	Files     []FileResult `json:"files"`
}
