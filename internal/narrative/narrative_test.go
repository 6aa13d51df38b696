package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/finance"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// stubGenerator is a canned Generator for exercising both branches.
type stubGenerator struct {
	text  string
	err   error
	delay time.Duration
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testContext() (models.Company, *models.FinancialAnalysis, *models.MarketAnalysis) {
	company := models.Company{Name: "Acme Robotics", Industry: "Technology", Description: "Warehouse automation"}
	fin := finance.Analyze(models.FinancialInput{})
	market := NewAdapter(nil).MarketAnalysis(company, models.MarketData{})
	return company, fin, market
}

func TestExecutiveSummaryGeneratedPath(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(&stubGenerator{text: "A fine generated summary."}, WithClock(fixedClock))

	res := a.ExecutiveSummary(context.Background(), company, fin, market)
	if res.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", res.Source, SourceGenerated)
	}
	if res.Text != "A fine generated summary." {
		t.Errorf("unexpected text %q", res.Text)
	}
}

func TestExecutiveSummaryFallbackOnError(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(&stubGenerator{err: errors.New("quota exceeded")}, WithClock(fixedClock))

	res := a.ExecutiveSummary(context.Background(), company, fin, market)
	if res.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", res.Source, SourceFallback)
	}
	// The fallback is a legitimate narrative, not an error message.
	if !strings.Contains(res.Text, "Acme Robotics") {
		t.Error("fallback should interpolate the company name")
	}
	if !strings.Contains(res.Text, "Investment Thesis") {
		t.Error("fallback should contain all template sections")
	}
	if strings.Contains(res.Text, "quota exceeded") {
		t.Error("fallback must not leak the generation error")
	}
}

func TestExecutiveSummaryFallbackOnEmptyResponse(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(&stubGenerator{text: "   \n"}, WithClock(fixedClock))

	if res := a.ExecutiveSummary(context.Background(), company, fin, market); res.Source != SourceFallback {
		t.Errorf("blank generation should fall back, got source %q", res.Source)
	}
}

func TestExecutiveSummaryFallbackOnTimeout(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(
		&stubGenerator{text: "too late", delay: time.Second},
		WithTimeout(10*time.Millisecond),
		WithClock(fixedClock),
	)

	start := time.Now()
	res := a.ExecutiveSummary(context.Background(), company, fin, market)
	if res.Source != SourceFallback {
		t.Fatalf("timeout should fall back, got source %q", res.Source)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("fallback took %v, timeout not applied", elapsed)
	}
}

func TestExecutiveSummaryDisabledCapability(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(nil, WithClock(fixedClock))

	if a.Enabled() {
		t.Error("nil generator should report disabled")
	}
	res := a.ExecutiveSummary(context.Background(), company, fin, market)
	if res.Source != SourceFallback {
		t.Errorf("disabled capability should fall back, got %q", res.Source)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	company, fin, market := testContext()
	a := NewAdapter(nil, WithClock(fixedClock))

	first := a.ExecutiveSummary(context.Background(), company, fin, market)
	second := a.ExecutiveSummary(context.Background(), company, fin, market)
	if first.Text != second.Text {
		t.Error("fallback template must be deterministic under a fixed clock")
	}
}

func TestMarketAnalysisDefaults(t *testing.T) {
	a := NewAdapter(nil)
	company := models.Company{Name: "Acme", Industry: "Logistics"}

	m := a.MarketAnalysis(company, models.MarketData{})
	if m.MarketSize != 12_500_000_000 {
		t.Errorf("market size = %v, want 12.5B default", m.MarketSize)
	}
	if m.GrowthRate != 15 {
		t.Errorf("growth rate = %v, want 15 default", m.GrowthRate)
	}
	if len(m.Advantages) != 4 || len(m.Risks) != 4 {
		t.Errorf("expected 4 advantages and 4 risks, got %d/%d", len(m.Advantages), len(m.Risks))
	}
	if !strings.Contains(m.Content, "$12.5B") {
		t.Error("content should render the TAM")
	}
}

func TestMarketAnalysisTAMFloor(t *testing.T) {
	a := NewAdapter(nil)
	// An implausibly small TAM is replaced, not rendered.
	m := a.MarketAnalysis(models.Company{}, models.MarketData{MarketSize: 100_000, GrowthRate: 22})
	if m.MarketSize != 12_500_000_000 {
		t.Errorf("sub-floor TAM should be replaced, got %v", m.MarketSize)
	}
	if m.GrowthRate != 22 {
		t.Errorf("supplied growth rate should be kept, got %v", m.GrowthRate)
	}

	m = a.MarketAnalysis(models.Company{}, models.MarketData{MarketSize: 50_000_000_000})
	if m.MarketSize != 50_000_000_000 {
		t.Errorf("above-floor TAM should be kept, got %v", m.MarketSize)
	}
}
