package prepare

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"scorecard/domain/core"
	"scorecard/domain/table"
)

// correlationWarnThreshold flags near-duplicate feature pairs
const correlationWarnThreshold = 0.95

// Validate enforces the prepared-dataset invariants before training. All
// violations found are reported together, not just the first. Highly
// correlated feature pairs are logged as warnings and never fail the run.
func Validate(prep *table.Prepared, log zerolog.Logger) error {
	var violations []string

	for _, name := range prep.Frame.Names() {
		values, _ := prep.Frame.Column(name)

		missing := 0
		nonFinite := 0
		for _, v := range values {
			if table.IsMissing(v) {
				missing++
			} else if math.IsInf(v, 0) {
				nonFinite++
			}
		}
		if missing > 0 {
			violations = append(violations, fmt.Sprintf("column %q has %d missing values", name, missing))
		}
		if nonFinite > 0 {
			violations = append(violations, fmt.Sprintf("column %q has %d non-finite values", name, nonFinite))
		}
	}

	target := prep.TargetValues()
	for _, v := range target {
		if !table.IsMissing(v) && v != 0 && v != 1 {
			violations = append(violations, fmt.Sprintf("target column %q is not binary 0/1", prep.Target))
			break
		}
	}

	for _, name := range prep.Frame.Names() {
		values, _ := prep.Frame.Column(name)
		if isConstant(values) {
			violations = append(violations, fmt.Sprintf("column %q has a single distinct value", name))
		}
	}

	warnCorrelatedFeatures(prep, log)

	if len(violations) > 0 {
		return core.NewValidationError(violations)
	}
	log.Debug().Int("columns", prep.Frame.NumCols()).Msg("prepared dataset passed validation")
	return nil
}

// isConstant counts distinct non-missing values, mirroring nunique
func isConstant(values []float64) bool {
	var seen *float64
	for i, v := range values {
		if table.IsMissing(v) {
			continue
		}
		if seen == nil {
			seen = &values[i]
		} else if v != *seen {
			return false
		}
	}
	return seen != nil
}

// warnCorrelatedFeatures logs every feature pair with absolute
// correlation above the threshold. Non-fatal: near-duplicates degrade
// interpretability, and L1 regularization handles the collinearity.
func warnCorrelatedFeatures(prep *table.Prepared, log zerolog.Logger) {
	names := prep.FeatureNames()
	cols := make([][]float64, len(names))
	for i, n := range names {
		cols[i], _ = prep.Frame.Column(n)
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := stat.Correlation(cols[i], cols[j], nil)
			if math.Abs(r) > correlationWarnThreshold {
				log.Warn().
					Str("feature_a", names[i]).
					Str("feature_b", names[j]).
					Float64("correlation", r).
					Msg("highly correlated feature pair")
			}
		}
	}
}
