package scoring

import (
	"fmt"
	"math"

	"scorecard/domain/scorecard"
	"scorecard/domain/table"
	"scorecard/domain/variable"
)

const (
	// BaseScore is the fixed starting score of every record
	BaseScore = 1000
	// scaleFactor converts a coefficient into whole points
	scaleFactor = 1000
	// minCoefficient drops weaker effects as noise
	minCoefficient = 0.01

	highThresholdFraction = 0.7
	medThresholdFraction  = 0.3
)

// GenerateRules translates trained coefficients into an ordered additive
// scorecard. Pure function of its inputs and fully deterministic: one
// BASE rule first, then rules per surviving feature in training order.
//
// Numerical features get two threshold rules at 70% and 30% of the
// observed (post-scaling) range carrying 70% and 30% of the full
// adjustment. One-hot indicators and ordinal-encoded categoricals each
// get a single presence rule with the full adjustment.
func GenerateRules(prep *table.Prepared, coefficients []float64, featureNames []string, cfg *variable.AnalysisConfig) scorecard.RuleSet {
	rules := scorecard.RuleSet{{
		Variable:    scorecard.BaseVariable,
		Condition:   scorecard.ConditionAlways,
		Adjustment:  BaseScore,
		Description: "Start with base score",
	}}

	for i, name := range featureNames {
		coefficient := coefficients[i]
		if math.Abs(coefficient) < minCoefficient {
			continue
		}
		adjustment := int(math.Round(coefficient * scaleFactor))

		switch {
		case cfg.IsNumerical(name):
			values, ok := prep.Frame.Column(name)
			if !ok {
				continue
			}
			min, max := values[0], values[0]
			for _, v := range values[1:] {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			span := max - min

			high := min + highThresholdFraction*span
			rules = append(rules, scorecard.Rule{
				Variable:    name,
				Condition:   scorecard.ConditionAbove,
				Threshold:   high,
				Adjustment:  int(float64(adjustment) * highThresholdFraction),
				Description: fmt.Sprintf("If %s is above %.2f", name, high),
			})

			med := min + medThresholdFraction*span
			rules = append(rules, scorecard.Rule{
				Variable:    name,
				Condition:   scorecard.ConditionAbove,
				Threshold:   med,
				Adjustment:  int(float64(adjustment) * medThresholdFraction),
				Description: fmt.Sprintf("If %s is above %.2f", name, med),
			})

		default:
			if source, category, ok := cfg.IndicatorSource(name); ok {
				rules = append(rules, scorecard.Rule{
					Variable:    name,
					Condition:   scorecard.ConditionPresent,
					Adjustment:  adjustment,
					Description: fmt.Sprintf("If %s is %s", source, category),
				})
			} else {
				// ordinal-encoded categorical kept under its own name
				rules = append(rules, scorecard.Rule{
					Variable:    name,
					Condition:   scorecard.ConditionPresent,
					Adjustment:  adjustment,
					Description: fmt.Sprintf("If %s is present", name),
				})
			}
		}
	}

	return rules
}
