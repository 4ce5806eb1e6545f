package train

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"scorecard/domain/core"
	"scorecard/domain/scorecard"
	"scorecard/domain/table"
)

const (
	// MinTrainingRows is the smallest prepared dataset worth fitting
	MinTrainingRows = 100

	splitSeed            = 42
	testFraction         = 0.2
	crossValFolds        = 5
	defaultTolerance     = 1e-4
	defaultMaxIterations = 1000
)

// lambdaFor fixes the regularization strength at 1/n (the sklearn C=1.0
// equivalent). Not tuned: explainability over peak predictive power.
func lambdaFor(n int) float64 {
	return 1 / float64(n)
}

// Model holds everything needed to reproduce scoring outside training:
// coefficients in feature order, the intercept, and the scaler statistics
// from the training split. Never mutated after fitting.
type Model struct {
	FeatureNames []string
	Coefficients []float64
	Intercept    float64
	ScalerMeans  []float64
	ScalerScales []float64
}

// Probabilities scores feature rows through the scaler and the fitted
// model, returning the positive-class probability per row.
func (m *Model) Probabilities(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	scaled := make([]float64, len(m.Coefficients))
	for i, row := range rows {
		for j, v := range row {
			scaled[j] = (v - m.ScalerMeans[j]) / m.ScalerScales[j]
		}
		out[i] = sigmoid(floats.Dot(scaled, m.Coefficients) + m.Intercept)
	}
	return out
}

// Fit trains the L1 logistic classifier on a prepared dataset: stratified
// 80/20 split with a fixed seed, standardization from training statistics
// only, then the deterministic solver. Held-out AUC and average precision
// come from the test split; cross-validated AUC from stratified folds
// over the full set.
func Fit(ctx context.Context, prep *table.Prepared, log zerolog.Logger) (*Model, scorecard.Metrics, error) {
	y := prep.TargetValues()
	rows := prep.FeatureMatrix()
	names := prep.FeatureNames()
	n := len(rows)

	if n < MinTrainingRows {
		return nil, scorecard.Metrics{}, core.NewTrainingError(
			fmt.Sprintf("insufficient data: minimum %d rows required, got %d", MinTrainingRows, n))
	}

	var positives int
	for _, v := range y {
		if v == 1 {
			positives++
		}
	}
	if positives == 0 || positives == n {
		return nil, scorecard.Metrics{}, core.NewTrainingError("target has a single class, nothing to fit")
	}

	trainIdx, testIdx := stratifiedSplit(y, testFraction, splitSeed)
	trainRows, trainY := gather(rows, y, trainIdx)
	testRows, testY := gather(rows, y, testIdx)

	scaler := fitScaler(trainRows)
	coef, intercept := fitLogisticL1(scaler.transform(trainRows), trainY, lambdaFor(len(trainRows)), defaultTolerance, defaultMaxIterations)

	testProbs := predictProbs(scaler.transform(testRows), coef, intercept)
	auc := rocAUC(testY, testProbs)
	avgPrec := averagePrecision(testY, testProbs)

	cvMean, cvVar, err := crossValidatedAUC(ctx, rows, y, crossValFolds, splitSeed, lambdaFor)
	if err != nil {
		return nil, scorecard.Metrics{}, core.NewTrainingError(err.Error())
	}

	model := &Model{
		FeatureNames: names,
		Coefficients: coef,
		Intercept:    intercept,
		ScalerMeans:  scaler.means,
		ScalerScales: scaler.scales,
	}
	metrics := scorecard.Metrics{
		BaselineRate:        stat.Mean(y, nil),
		AUCScore:            auc,
		AvgPrecision:        avgPrec,
		CrossValAUC:         cvMean,
		CrossValAUCVariance: cvVar,
	}

	nonZero := 0
	for _, c := range coef {
		if c != 0 {
			nonZero++
		}
	}
	log.Info().
		Int("rows", n).
		Int("features", len(names)).
		Int("nonzero_coefficients", nonZero).
		Float64("test_auc", auc).
		Float64("cv_auc", cvMean).
		Msg("model trained")

	return model, metrics, nil
}

func gather(rows [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	outRows := make([][]float64, len(idx))
	outY := make([]float64, len(idx))
	for i, ix := range idx {
		outRows[i] = rows[ix]
		outY[i] = y[ix]
	}
	return outRows, outY
}
