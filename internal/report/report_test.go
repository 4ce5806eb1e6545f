package report

import (
	"strings"
	"testing"

	"scorecard/domain/scorecard"
)

func sampleResult() *scorecard.AnalysisResult {
	return &scorecard.AnalysisResult{
		Success: true,
		Metrics: scorecard.Metrics{
			BaselineRate:  0.2,
			TopDecileRate: 0.65,
			AUCScore:      0.81,
			AvgPrecision:  0.54,
			CrossValAUC:   0.79,
		},
		FeatureImportance: []scorecard.FeatureImportance{
			{Variable: "income", Importance: 0.5, Coefficient: 0.5, Effect: "positive"},
			{Variable: "region_east", Importance: 0.21, Coefficient: -0.21, Effect: "negative"},
		},
		ScoringRules: []string{
			"Start with 1000 points",
			"If income is above 0.70, Add 350 points",
		},
		ResponseRates: []scorecard.DecileRecord{
			{Decile: 1, Count: 10, ResponseRate: 0.0, Lift: 0.0},
			{Decile: 10, Count: 10, ResponseRate: 0.65, Lift: 3.25},
		},
		ScoreBands: []scorecard.ScoreBand{
			{Label: "Very Low", Count: 20, MinScore: 790, MaxScore: 1000, AvgScore: 895, Percentage: 20},
		},
	}
}

func TestMarkdownReport(t *testing.T) {
	md := Markdown(sampleResult())

	for _, want := range []string{
		"# Analysis Report",
		"## Model Performance",
		"| Baseline response rate | 20.0% |",
		"| Top decile response rate | 65.0% |",
		"## Top Drivers",
		"| income | 0.5000 | positive |",
		"## Scoring Rules",
		"- Start with 1000 points",
		"## Response Rate by Decile",
		"| D10 | 10 | 65.0% | 3.25x |",
		"## Score Bands",
		"| Very Low | 20 | 20.0% | 790 to 1000 | 895.0 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestMarkdownReportFailure(t *testing.T) {
	result := &scorecard.AnalysisResult{Success: false, Error: "model training failed: too few rows"}
	md := Markdown(result)

	if !strings.Contains(md, "FAILED") || !strings.Contains(md, "too few rows") {
		t.Errorf("expected failure report with error text, got %q", md)
	}
	if strings.Contains(md, "## Model Performance") {
		t.Error("failure report should not render metric sections")
	}
}

func TestMarkdownCapsDrivers(t *testing.T) {
	result := sampleResult()
	result.FeatureImportance = nil
	for i := 0; i < 15; i++ {
		result.FeatureImportance = append(result.FeatureImportance, scorecard.FeatureImportance{
			Variable: string(rune('a' + i)), Effect: "positive",
		})
	}

	md := Markdown(result)
	if strings.Contains(md, "| k |") {
		t.Error("expected drivers table capped at 10 rows")
	}
	if !strings.Contains(md, "| j |") {
		t.Error("expected tenth driver present")
	}
}

func TestHTMLReport(t *testing.T) {
	page := string(HTML(sampleResult()))

	if !strings.Contains(page, "<html>") {
		t.Error("expected a complete HTML page")
	}
	if !strings.Contains(page, "<table>") {
		t.Error("expected markdown tables rendered as HTML tables")
	}
	if !strings.Contains(page, "Analysis Report") {
		t.Error("expected report title in page")
	}
}
