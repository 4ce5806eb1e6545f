package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"scorecard/domain/scorecard"
)

// Markdown renders an analysis result as a human-readable markdown
// report: headline metrics, top features, the scorecard itself, the
// decile table and the score bands.
func Markdown(result *scorecard.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Analysis Report\n\n")
	if !result.Success {
		fmt.Fprintf(&b, "**Status: FAILED**: %s\n", result.Error)
		return b.String()
	}

	m := result.Metrics
	b.WriteString("## Model Performance\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Baseline response rate | %.1f%% |\n", m.BaselineRate*100)
	fmt.Fprintf(&b, "| Top decile response rate | %.1f%% |\n", m.TopDecileRate*100)
	fmt.Fprintf(&b, "| ROC AUC (held out) | %.3f |\n", m.AUCScore)
	fmt.Fprintf(&b, "| Average precision (held out) | %.3f |\n", m.AvgPrecision)
	fmt.Fprintf(&b, "| Cross-validated AUC | %.3f (var %.4f) |\n", m.CrossValAUC, m.CrossValAUCVariance)

	b.WriteString("\n## Top Drivers\n\n")
	b.WriteString("| Variable | Coefficient | Effect |\n|---|---|---|\n")
	top := result.FeatureImportance
	if len(top) > 10 {
		top = top[:10]
	}
	for _, f := range top {
		fmt.Fprintf(&b, "| %s | %.4f | %s |\n", f.Variable, f.Coefficient, f.Effect)
	}

	b.WriteString("\n## Scoring Rules\n\n")
	for _, line := range result.ScoringRules {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\n## Response Rate by Decile\n\n")
	b.WriteString("| Decile | Count | Response Rate | Lift |\n|---|---|---|---|\n")
	for _, d := range result.ResponseRates {
		fmt.Fprintf(&b, "| D%d | %d | %.1f%% | %.2fx |\n", d.Decile, d.Count, d.ResponseRate*100, d.Lift)
	}

	if len(result.ScoreBands) > 0 {
		b.WriteString("\n## Score Bands\n\n")
		b.WriteString("| Band | Count | Share | Score Range | Avg |\n|---|---|---|---|---|\n")
		for _, band := range result.ScoreBands {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% | %d to %d | %.1f |\n",
				band.Label, band.Count, band.Percentage, band.MinScore, band.MaxScore, band.AvgScore)
		}
	}

	return b.String()
}

// HTML renders the markdown report as a standalone HTML page
func HTML(result *scorecard.AnalysisResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(result)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}
