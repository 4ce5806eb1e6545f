package scoring

import (
	"fmt"
	"sort"

	"scorecard/domain/core"
	"scorecard/domain/scorecard"
)

// DecileCount is the number of equal-frequency probability bins
const DecileCount = 10

// Deciles partitions records into ten equal-frequency bins by ascending
// predicted probability (rank binning, so tied probabilities may straddle
// a boundary) and computes count, response rate and lift per bin. The
// second return value maps every row to its decile (1..10).
func Deciles(targets, probabilities []float64) ([]scorecard.DecileRecord, []int, error) {
	n := len(targets)
	if n != len(probabilities) {
		return nil, nil, core.NewTrainingError(
			fmt.Sprintf("decile analysis: %d targets vs %d probabilities", n, len(probabilities)))
	}
	if n < DecileCount {
		return nil, nil, core.NewTrainingError(
			fmt.Sprintf("decile analysis needs at least %d rows, got %d", DecileCount, n))
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probabilities[idx[a]] < probabilities[idx[b]]
	})

	assignment := make([]int, n)
	counts := make([]int, DecileCount)
	sums := make([]float64, DecileCount)
	for rank, row := range idx {
		bin := rank * DecileCount / n
		assignment[row] = bin + 1
		counts[bin]++
		sums[bin] += targets[row]
	}

	var total float64
	for _, t := range targets {
		total += t
	}
	baseline := total / float64(n)

	records := make([]scorecard.DecileRecord, DecileCount)
	for bin := 0; bin < DecileCount; bin++ {
		rate := 0.0
		if counts[bin] > 0 {
			rate = sums[bin] / float64(counts[bin])
		}
		lift := 0.0
		if baseline > 0 {
			lift = rate / baseline
		}
		records[bin] = scorecard.DecileRecord{
			Decile:       bin + 1,
			Count:        counts[bin],
			ResponseRate: rate,
			Lift:         lift,
		}
	}
	return records, assignment, nil
}
