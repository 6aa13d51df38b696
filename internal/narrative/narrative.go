// Package narrative produces the prose sections of a CIM document.
// Generation delegates to a configured generative-text capability when
// one is available and falls back to deterministic templates on any
// failure — the adapter never propagates a generation error to the
// caller, it only degrades. Which path executed is observable on the
// returned Result.
package narrative

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// Source identifies which branch produced a narrative.
type Source string

const (
	// SourceGenerated marks text returned by the generative capability.
	SourceGenerated Source = "generated"
	// SourceFallback marks text built by the deterministic template.
	SourceFallback Source = "fallback"
)

// Result is a narrative plus the branch that produced it. The fallback
// branch always yields a complete, legitimate narrative — never an
// error message — so downstream stages never special-case it.
type Result struct {
	Text   string
	Source Source
}

// Generator is the single capability boundary to the generative-text
// backend: one prompt in, text or an error out, one attempt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultTimeout bounds the external generation call. Expiry is
// treated the same as the capability being unavailable.
const DefaultTimeout = 60 * time.Second

// Adapter builds narrative sections. It holds only immutable
// configuration; per-request data flows through the method arguments.
// A nil generator means the capability is disabled and every request
// takes the template branch.
type Adapter struct {
	gen     Generator
	timeout time.Duration
	now     func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout overrides the generation timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithClock overrides the clock used for dated template text. Intended
// for tests that need byte-identical output.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// NewAdapter creates an adapter around the given generator, which may
// be nil to disable the generative path entirely.
func NewAdapter(gen Generator, opts ...Option) *Adapter {
	a := &Adapter{
		gen:     gen,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Enabled reports whether a generative capability is configured.
func (a *Adapter) Enabled() bool {
	return a.gen != nil
}

// ExecutiveSummary produces the executive summary narrative. The
// generative branch gets one attempt under the adapter timeout; any
// failure — disabled capability, timeout, error, empty response —
// silently selects the template branch.
func (a *Adapter) ExecutiveSummary(ctx context.Context, company models.Company, fin *models.FinancialAnalysis, market *models.MarketAnalysis) Result {
	if a.gen == nil {
		return Result{
			Text:   a.executiveSummaryTemplate(company, fin, market),
			Source: SourceFallback,
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(genCtx, executiveSummaryPrompt(company, fin, market))
	if err != nil || strings.TrimSpace(text) == "" {
		log.Warn().Err(err).Msg("generative summary failed, falling back to template")
		return Result{
			Text:   a.executiveSummaryTemplate(company, fin, market),
			Source: SourceFallback,
		}
	}

	return Result{Text: text, Source: SourceGenerated}
}

// MarketAnalysis builds the market-analysis section. The narrative and
// the structured fields are fully deterministic: missing market data
// is met with documented defaults (a $12.5B TAM floor and a 15% growth
// rate), never an error.
func (a *Adapter) MarketAnalysis(company models.Company, market models.MarketData) *models.MarketAnalysis {
	marketSize := market.MarketSize
	if marketSize < marketSizeFloor {
		marketSize = defaultMarketSize
	}
	growthRate := market.GrowthRate
	if growthRate == 0 {
		growthRate = defaultMarketGrowth
	}

	return &models.MarketAnalysis{
		Content:     marketAnalysisTemplate(company, marketSize, growthRate),
		MarketSize:  marketSize,
		GrowthRate:  growthRate,
		Opportunity: "Significant market opportunity with favorable dynamics and strong growth potential",
		Advantages: []string{
			"Strong competitive positioning",
			"Differentiated value proposition",
			"Scalable business model",
			"Market leadership position",
		},
		Risks: []string{
			"Competitive pressure from established players",
			"Market saturation and maturity",
			"Economic and regulatory changes",
			"Technology disruption and innovation cycles",
		},
	}
}
