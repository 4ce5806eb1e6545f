package train

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// rocAUC computes the area under the ROC curve via the rank-statistic
// formulation, with average ranks for tied scores. Returns NaN when only
// one class is present.
func rocAUC(y, scores []float64) float64 {
	n := len(y)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] < scores[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[idx[j]] == scores[idx[i]] {
			j++
		}
		// average rank across the tie group, ranks are 1-based
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}

	var nPos, nNeg, posRankSum float64
	for i, v := range y {
		if v == 1 {
			nPos++
			posRankSum += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return math.NaN()
	}
	return (posRankSum - nPos*(nPos+1)/2) / (nPos * nNeg)
}

// averagePrecision computes AP as the precision-weighted sum of recall
// increments over the ranking, highest score first.
func averagePrecision(y, scores []float64) float64 {
	n := len(y)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	var nPos float64
	for _, v := range y {
		if v == 1 {
			nPos++
		}
	}
	if nPos == 0 {
		return math.NaN()
	}

	var hits, ap float64
	for rank, i := range idx {
		if y[i] == 1 {
			hits++
			precision := hits / float64(rank+1)
			ap += precision / nPos
		}
	}
	return ap
}

// crossValidatedAUC runs stratified k-fold cross-validation over the full
// prepared set and returns the mean and population variance of the
// per-fold held-out AUC. Folds fit concurrently; every fold is seeded and
// the fold assignment is deterministic, so concurrency does not affect
// the result.
func crossValidatedAUC(ctx context.Context, rows [][]float64, y []float64, k int, seed int64, lambdaFor func(n int) float64) (mean, variance float64, err error) {
	assignment := stratifiedFolds(y, k, seed)
	aucs := make([]float64, k)

	g, _ := errgroup.WithContext(ctx)
	for fold := 0; fold < k; fold++ {
		fold := fold
		g.Go(func() error {
			var trainRows, testRows [][]float64
			var trainY, testY []float64
			for i, f := range assignment {
				if f == fold {
					testRows = append(testRows, rows[i])
					testY = append(testY, y[i])
				} else {
					trainRows = append(trainRows, rows[i])
					trainY = append(trainY, y[i])
				}
			}

			scaler := fitScaler(trainRows)
			coef, intercept := fitLogisticL1(scaler.transform(trainRows), trainY, lambdaFor(len(trainRows)), defaultTolerance, defaultMaxIterations)
			aucs[fold] = rocAUC(testY, predictProbs(scaler.transform(testRows), coef, intercept))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	valid := aucs[:0:0]
	for _, a := range aucs {
		if !math.IsNaN(a) {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return math.NaN(), math.NaN(), nil
	}
	mean = stat.Mean(valid, nil)
	for _, a := range valid {
		variance += (a - mean) * (a - mean)
	}
	variance /= float64(len(valid))
	return mean, variance, nil
}
