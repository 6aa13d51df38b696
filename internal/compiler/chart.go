package compiler

import (
	"encoding/json"
	"math"
	"net/url"

	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// The chart reference is a declarative chart spec — a chart.js config
// wrapped in a QuickChart render URL — not a rendered image. Struct
// types (rather than maps) keep the JSON field order, and therefore
// the URL, deterministic.

const (
	chartBaseURL   = "https://quickchart.io/chart"
	chartMaxYears  = 5
	chartWidth     = "600"
	chartHeight    = "300"
	revenueColor   = "rgba(54, 162, 235, 0.8)"
	ebitdaColor    = "rgba(75, 192, 192, 0.8)"
	chartTitleText = "Financial Growth Trajectory"
)

type chartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type chartPlugins struct {
	Title chartTitle `json:"title"`
}

type chartOptions struct {
	Responsive bool         `json:"responsive"`
	Plugins    chartPlugins `json:"plugins"`
}

type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

// FinancialChartURL builds the revenue/EBITDA bar-chart descriptor for
// the most recent years (at most five). An empty revenue series yields
// an empty URL.
func FinancialChartURL(fin *models.FinancialAnalysis, refYear int) string {
	if len(fin.Revenue) == 0 {
		return ""
	}

	numYears := len(fin.Revenue)
	if numYears > chartMaxYears {
		numYears = chartMaxYears
	}

	cfg := chartConfig{
		Type: "bar",
		Data: chartData{
			Labels: yearLabels(numYears, refYear),
			Datasets: []chartDataset{{
				Label:           "Revenue ($M)",
				Data:            toMillions(fin.Revenue, numYears),
				BackgroundColor: revenueColor,
			}},
		},
		Options: chartOptions{
			Responsive: true,
			Plugins:    chartPlugins{Title: chartTitle{Display: true, Text: chartTitleText}},
		},
	}
	if len(fin.EBITDA) > 0 {
		cfg.Data.Datasets = append(cfg.Data.Datasets, chartDataset{
			Label:           "EBITDA ($M)",
			Data:            toMillions(fin.EBITDA, numYears),
			BackgroundColor: ebitdaColor,
		})
	}

	encoded, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return chartBaseURL + "?c=" + url.QueryEscape(string(encoded)) +
		"&w=" + chartWidth + "&h=" + chartHeight
}

// toMillions converts the trailing n points to millions, rounded to
// one decimal.
func toMillions(series []float64, n int) []float64 {
	if n > len(series) {
		n = len(series)
	}
	out := make([]float64, n)
	for i, v := range series[len(series)-n:] {
		out[i] = math.Round(v/1_000_000*10) / 10
	}
	return out
}
