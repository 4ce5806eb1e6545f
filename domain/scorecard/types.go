package scorecard

import (
	"fmt"

	"scorecard/domain/core"
)

// BaseVariable marks the rule every score starts from
const BaseVariable = "BASE"

// Condition is the predicate kind of a scoring rule
type Condition string

const (
	// ConditionAlways fires on every record (base rule only)
	ConditionAlways Condition = "always"
	// ConditionAbove fires when the column value exceeds the threshold
	ConditionAbove Condition = "above"
	// ConditionPresent fires when the indicator is set (or value non-missing)
	ConditionPresent Condition = "present"
)

// Rule is one additive point adjustment of a scorecard
type Rule struct {
	Variable    string    `json:"variable"`
	Condition   Condition `json:"condition"`
	Threshold   float64   `json:"threshold,omitempty"` // ConditionAbove only
	Adjustment  int       `json:"adjustment"`
	Description string    `json:"description"`
}

// ConditionString renders the condition the way it is persisted and
// displayed: "always", "> 0.70", "present".
func (r Rule) ConditionString() string {
	switch r.Condition {
	case ConditionAbove:
		return fmt.Sprintf("> %.2f", r.Threshold)
	default:
		return string(r.Condition)
	}
}

// Describe formats the rule as one human-readable sentence
func (r Rule) Describe() string {
	if r.Variable == BaseVariable {
		return fmt.Sprintf("Start with %d points", r.Adjustment)
	}
	direction := "Add"
	points := r.Adjustment
	if points < 0 {
		direction = "Subtract"
		points = -points
	}
	return fmt.Sprintf("%s, %s %d points", r.Description, direction, points)
}

// RuleSet is an ordered scorecard: exactly one base rule first, then one
// or two rules per surviving feature in training order. Order matters for
// display only; evaluation is commutative.
type RuleSet []Rule

// Validate checks the base-rule invariant
func (rs RuleSet) Validate() error {
	if len(rs) == 0 {
		return core.NewValidationError([]string{"rule set is empty"})
	}
	if rs[0].Variable != BaseVariable || rs[0].Condition != ConditionAlways {
		return core.NewValidationError([]string{"rule set must begin with the BASE/always rule"})
	}
	for _, r := range rs[1:] {
		if r.Variable == BaseVariable {
			return core.NewValidationError([]string{"rule set has more than one BASE rule"})
		}
	}
	return nil
}

// Base returns the base adjustment every record starts from
func (rs RuleSet) Base() int {
	for _, r := range rs {
		if r.Variable == BaseVariable {
			return r.Adjustment
		}
	}
	return 0
}

// Descriptions renders every rule as a human-readable line, in order
func (rs RuleSet) Descriptions() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Describe()
	}
	return out
}

// DecileRecord is one of ten equal-frequency probability bins.
// Decile 1 holds the lowest predicted probabilities, 10 the highest.
type DecileRecord struct {
	Decile       int     `json:"decile"`
	Count        int     `json:"count"`
	ResponseRate float64 `json:"response_rate"`
	Lift         float64 `json:"lift"`
}

// FeatureImportance is one row of the coefficient-magnitude ranking
type FeatureImportance struct {
	Variable    string  `json:"variable"`
	Importance  float64 `json:"importance"`
	Coefficient float64 `json:"coefficient"`
	Effect      string  `json:"effect"` // "positive" or "negative"
}

// Metrics summarizes model quality for one run
type Metrics struct {
	BaselineRate        float64 `json:"baseline_rate"`
	TopDecileRate       float64 `json:"top_decile_rate"`
	AUCScore            float64 `json:"auc_score"`
	AvgPrecision        float64 `json:"avg_precision"`
	CrossValAUC         float64 `json:"cross_val_auc"`
	CrossValAUCVariance float64 `json:"cross_val_auc_variance"`
}

// ScoreBand is one of five labelled ranges over the rule scores
type ScoreBand struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	MinScore   int     `json:"min_score"`
	MaxScore   int     `json:"max_score"`
	AvgScore   float64 `json:"avg_score"`
	Percentage float64 `json:"percentage"`
}

// ScoredRecord pairs one input row with its model and rule scores
type ScoredRecord struct {
	RecordID   int     `json:"record_id"`
	ModelScore float64 `json:"model_score"`
	RuleScore  int     `json:"rule_score"`
	Decile     int     `json:"decile"`
}

// AnalysisResult is the terminal artifact of one run
type AnalysisResult struct {
	Success           bool                `json:"success"`
	Error             string              `json:"error,omitempty"`
	JobID             core.JobID          `json:"job_id,omitempty"`
	Metrics           Metrics             `json:"metrics"`
	FeatureImportance []FeatureImportance `json:"feature_importance"`
	ScoringRules      []string            `json:"scoring_rules"`
	Rules             RuleSet             `json:"rules,omitempty"`
	ResponseRates     []DecileRecord      `json:"response_rates"`
	ScoreBands        []ScoreBand         `json:"score_bands,omitempty"`
}

// Failure wraps an error into the caller-facing result shape
func Failure(jobID core.JobID, err error) *AnalysisResult {
	return &AnalysisResult{Success: false, Error: err.Error(), JobID: jobID}
}
