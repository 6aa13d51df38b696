package finance

import (
	"fmt"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/utils"
)

// ROI scenario parameters. The three scenarios share one CAGR-derived
// IRR adjustment but carry distinct fixed base IRRs, multiples, and
// payback periods. These constants define the platform's return model
// and must be reproduced exactly.
const (
	baseIRR         = 22.0
	optimisticIRR   = 28.0
	conservativeIRR = 18.0

	baseMultiple         = 4.2
	optimisticMultiple   = 5.8
	conservativeMultiple = 3.1

	basePayback         = 3.8
	optimisticPayback   = 3.2
	conservativePayback = 4.5

	irrAdjustScale = 50.0
	irrAdjustCap   = 10.0

	defaultInvestment  = 5_000_000
	defaultTimeHorizon = 5

	defaultExitStrategy = "Strategic acquisition or IPO"
)

// ROIProjections derives the three named return scenarios from the
// revenue trajectory and the investment assumptions. The IRR
// adjustment is clamp(cagr*50, 0, 10); an empty revenue series means a
// zero adjustment, so the base scenario lands on exactly 22.0%. The
// transformation is deterministic and side-effect-free.
func ROIProjections(revenue []float64, investment float64, timeHorizonYears int) *models.ROIProjections {
	if investment <= 0 {
		investment = defaultInvestment
	}
	if timeHorizonYears <= 0 {
		timeHorizonYears = defaultTimeHorizon
	}

	cagr := CAGR(revenue)
	adjust := cagr * irrAdjustScale
	if adjust < 0 {
		adjust = 0
	}
	if adjust > irrAdjustCap {
		adjust = irrAdjustCap
	}

	scenarios := models.ScenarioSet{
		BaseCase: models.ROIScenario{
			IRR:           baseIRR + adjust,
			Multiple:      baseMultiple,
			PaybackYears:  basePayback,
			ExitValuation: investment * baseMultiple,
		},
		Optimistic: models.ROIScenario{
			IRR:           optimisticIRR + adjust,
			Multiple:      optimisticMultiple,
			PaybackYears:  optimisticPayback,
			ExitValuation: investment * optimisticMultiple,
		},
		Conservative: models.ROIScenario{
			IRR:           conservativeIRR + adjust,
			Multiple:      conservativeMultiple,
			PaybackYears:  conservativePayback,
			ExitValuation: investment * conservativeMultiple,
		},
	}

	assumptions := models.Assumptions{
		InvestmentAmount: investment,
		TimeHorizonYears: timeHorizonYears,
		ExitStrategy:     defaultExitStrategy,
	}

	return &models.ROIProjections{
		Content:     roiContent(scenarios, assumptions),
		Scenarios:   scenarios,
		Assumptions: assumptions,
	}
}

func roiContent(s models.ScenarioSet, a models.Assumptions) string {
	scenario := func(name string, sc models.ROIScenario) string {
		return fmt.Sprintf(`**%s Scenario:**
- Projected IRR: %.0f%%
- Investment Multiple: %.1fx
- Payback Period: %.1f years
- Exit Valuation: %s`,
			name, sc.IRR, sc.Multiple, sc.PaybackYears, utils.FormatMillions(sc.ExitValuation))
	}

	return fmt.Sprintf(`**Investment Projections & Returns Analysis**

%s

%s

%s

**Key Assumptions:**
- Investment Amount: %s
- Time Horizon: %d years
- Exit Strategy: %s
- Market growth continues at current trajectory

**Value Creation Drivers:**
- Revenue growth and market expansion
- Operational efficiency improvements
- Strategic partnerships and acquisitions
- Technology innovation and competitive advantages`,
		scenario("Base Case", s.BaseCase),
		scenario("Optimistic", s.Optimistic),
		scenario("Conservative", s.Conservative),
		utils.FormatMillions(a.InvestmentAmount),
		a.TimeHorizonYears,
		a.ExitStrategy)
}
