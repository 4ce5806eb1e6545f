package scorecard

import (
	"scorecard/domain/table"
)

// Score applies the rule set to a frame and returns one integer score per
// row. Evaluation is purely additive: every row starts at the base
// adjustment and collects the adjustment of each rule whose predicate
// holds. Rules referencing a column the frame does not have are silently
// skipped so a scorecard survives partial feature sets.
func (rs RuleSet) Score(f *table.Frame) []int {
	scores := make([]int, f.NumRows())
	base := rs.Base()
	for i := range scores {
		scores[i] = base
	}

	for _, rule := range rs {
		if rule.Variable == BaseVariable {
			continue
		}
		values, ok := f.Column(rule.Variable)
		if !ok {
			continue
		}
		switch rule.Condition {
		case ConditionAbove:
			for i, v := range values {
				if v > rule.Threshold {
					scores[i] += rule.Adjustment
				}
			}
		case ConditionPresent:
			if isIndicator(values) {
				for i, v := range values {
					if v == 1 {
						scores[i] += rule.Adjustment
					}
				}
			} else {
				for i, v := range values {
					if !table.IsMissing(v) {
						scores[i] += rule.Adjustment
					}
				}
			}
		}
	}
	return scores
}

// isIndicator reports whether every non-missing value is 0 or 1
func isIndicator(values []float64) bool {
	for _, v := range values {
		if table.IsMissing(v) {
			continue
		}
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}
