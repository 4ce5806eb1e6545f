package scoring

import (
	"github.com/montanaflynn/stats"

	"scorecard/domain/scorecard"
)

// bandLabels order low to high
var bandLabels = [5]string{"Very Low", "Low", "Medium", "High", "Very High"}

// ScoreBands splits rule scores into five equal-width labelled ranges and
// summarizes each. A degenerate distribution (every score identical)
// collapses into a single Medium band.
func ScoreBands(scores []int) []scorecard.ScoreBand {
	if len(scores) == 0 {
		return nil
	}

	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if min == max {
		return []scorecard.ScoreBand{{
			Label:      "Medium",
			Count:      len(scores),
			MinScore:   min,
			MaxScore:   max,
			AvgScore:   float64(min),
			Percentage: 100,
		}}
	}

	span := float64(max-min) / float64(len(bandLabels))
	grouped := make([][]float64, len(bandLabels))
	for _, s := range scores {
		bin := int(float64(s-min) / span)
		if bin >= len(bandLabels) {
			bin = len(bandLabels) - 1
		}
		grouped[bin] = append(grouped[bin], float64(s))
	}

	bands := make([]scorecard.ScoreBand, 0, len(bandLabels))
	for i, label := range bandLabels {
		if len(grouped[i]) == 0 {
			continue
		}
		lo, _ := stats.Min(grouped[i])
		hi, _ := stats.Max(grouped[i])
		avg, _ := stats.Mean(grouped[i])
		bands = append(bands, scorecard.ScoreBand{
			Label:      label,
			Count:      len(grouped[i]),
			MinScore:   int(lo),
			MaxScore:   int(hi),
			AvgScore:   avg,
			Percentage: float64(len(grouped[i])) / float64(len(scores)) * 100,
		})
	}
	return bands
}
