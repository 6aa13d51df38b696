package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/compiler"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/narrative"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

func newService(gen narrative.Generator) *Service {
	return New(
		narrative.NewAdapter(gen),
		compiler.New(compiler.WithReferenceYear(2024)),
	)
}

func sampleRequest() models.GenerateRequest {
	return models.GenerateRequest{
		Title:   "Project Atlas",
		Company: models.Company{Name: "Acme Robotics", Industry: "Technology"},
		Financials: models.FinancialInput{
			Revenue:   []float64{1_000_000, 1_500_000, 2_000_000},
			NetIncome: []float64{100_000, 200_000, 300_000},
		},
		Market:      models.MarketData{MarketSize: 25_000_000_000, GrowthRate: 18},
		Assumptions: models.Assumptions{InvestmentAmount: 5_000_000, TimeHorizonYears: 5},
	}
}

func TestGenerateWithNarrator(t *testing.T) {
	svc := newService(stubGenerator{text: "A generated executive summary."})

	out, err := svc.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if out.Analysis.Confidence != 0.92 || out.Analysis.Accuracy != 0.94 {
		t.Errorf("generated scores = %v/%v, want 0.92/0.94",
			out.Analysis.Confidence, out.Analysis.Accuracy)
	}
	if out.Analysis.NarrativeSource != "generated" {
		t.Errorf("source = %q", out.Analysis.NarrativeSource)
	}
	if out.Analysis.ExecutiveSummary != "A generated executive summary." {
		t.Errorf("summary = %q", out.Analysis.ExecutiveSummary)
	}
	if res := compiler.Validate(out.Content); !res.Valid {
		t.Errorf("compiled document invalid, missing %v", res.MissingSections)
	}
}

func TestGenerateFallbackScores(t *testing.T) {
	svc := newService(stubGenerator{err: errors.New("upstream down")})

	out, err := svc.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Analysis.Confidence != 0.85 || out.Analysis.Accuracy != 0.88 {
		t.Errorf("fallback scores = %v/%v, want 0.85/0.88",
			out.Analysis.Confidence, out.Analysis.Accuracy)
	}
	if out.Analysis.NarrativeSource != "fallback" {
		t.Errorf("source = %q", out.Analysis.NarrativeSource)
	}
	if !strings.Contains(out.Analysis.ExecutiveSummary, "Acme Robotics") {
		t.Error("templated summary should mention the company")
	}
}

func TestGenerateDisabledNarrator(t *testing.T) {
	svc := newService(nil)

	out, err := svc.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Analysis.NarrativeSource != "fallback" {
		t.Errorf("source = %q", out.Analysis.NarrativeSource)
	}
}

func TestGenerateEmptyRequestUsesDefaults(t *testing.T) {
	svc := newService(nil)

	out, err := svc.Generate(context.Background(), models.GenerateRequest{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Absent revenue means base-rate scenarios, not derived ones.
	if got := out.Analysis.ROI.Scenarios.BaseCase.IRR; got != 22.0 {
		t.Errorf("base IRR = %v, want 22.0", got)
	}
	// Analysis itself still runs on the default series.
	if len(out.Analysis.Financial.Revenue) != 5 {
		t.Errorf("default revenue series = %v", out.Analysis.Financial.Revenue)
	}
	if out.Content.Title != "Confidential Information Memorandum" {
		t.Errorf("default title = %q", out.Content.Title)
	}
}

func TestGenerateInvalidTemplateFallsBack(t *testing.T) {
	svc := newService(nil)
	req := sampleRequest()
	req.TemplateID = "does-not-exist"

	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	svc := newService(stubGenerator{text: "ignored"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Generate(ctx, sampleRequest()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
