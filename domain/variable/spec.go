package variable

import (
	"fmt"
	"strings"

	"scorecard/domain/core"
)

// Kind discriminates the variable spec union. Unknown kinds are a
// validation error, never a silent default.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindNumerical   Kind = "numerical"
)

// Direction declares which end of a numerical variable is "good"
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Range is the observed min/max of a numerical variable
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Spec is the tagged per-variable configuration: either categorical
// (ordered with an explicit value order, or unordered) or numerical with
// a direction of goodness. Immutable once an analysis starts.
type Spec struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Categorical fields
	Ordered    bool     `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	ValueOrder []string `json:"value_order,omitempty" yaml:"value_order,omitempty"`

	// Numerical fields
	Direction     Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	ObservedRange *Range    `json:"observed_range,omitempty" yaml:"observed_range,omitempty"`
}

// OrderedCategorical builds a categorical spec ranked by valueOrder
func OrderedCategorical(valueOrder []string) Spec {
	return Spec{Kind: KindCategorical, Ordered: true, ValueOrder: valueOrder}
}

// UnorderedCategorical builds a categorical spec expanded to indicators
func UnorderedCategorical() Spec {
	return Spec{Kind: KindCategorical}
}

// Numerical builds a numerical spec with a direction of goodness
func Numerical(direction Direction) Spec {
	return Spec{Kind: KindNumerical, Direction: direction}
}

// Validate checks internal consistency of one spec
func (s Spec) Validate(name string) error {
	switch s.Kind {
	case KindCategorical:
		if s.Ordered && len(s.ValueOrder) == 0 {
			return core.NewConfigurationError(fmt.Sprintf("variable %q is ordered categorical but has no value order", name))
		}
		if s.Direction != "" {
			return core.NewConfigurationError(fmt.Sprintf("variable %q is categorical but declares a direction", name))
		}
		return nil
	case KindNumerical:
		switch s.Direction {
		case HigherIsBetter, LowerIsBetter:
			return nil
		default:
			return core.NewConfigurationError(fmt.Sprintf("variable %q has unknown direction %q", name, s.Direction))
		}
	default:
		return core.NewConfigurationError(fmt.Sprintf("variable %q has unknown kind %q", name, s.Kind))
	}
}

// AnalysisConfig is the full user-declared configuration for one run
type AnalysisConfig struct {
	TargetVariable       string          `json:"target_variable" yaml:"target_variable"`
	CategoricalVariables []string        `json:"categorical_variables" yaml:"categorical_variables"`
	NumericalVariables   []string        `json:"numerical_variables" yaml:"numerical_variables"`
	VariableDetails      map[string]Spec `json:"variable_details" yaml:"variable_details"`
	SourceIdentifier     string          `json:"source_identifier" yaml:"source_identifier"`
}

// Validate enforces the config invariants: a source and a target exist,
// the target is not also a predictor, the categorical and numerical sets
// are disjoint, and every declared variable carries a spec of the
// matching kind.
func (c *AnalysisConfig) Validate() error {
	if strings.TrimSpace(c.SourceIdentifier) == "" {
		return core.NewConfigurationError("source identifier not specified")
	}
	if strings.TrimSpace(c.TargetVariable) == "" {
		return core.NewConfigurationError("target variable not specified")
	}
	if len(c.CategoricalVariables)+len(c.NumericalVariables) == 0 {
		return core.NewConfigurationError("no predictor variables declared")
	}

	seen := make(map[string]Kind, len(c.CategoricalVariables)+len(c.NumericalVariables))
	for _, name := range c.CategoricalVariables {
		if name == c.TargetVariable {
			return core.NewConfigurationError(fmt.Sprintf("target variable %q also declared categorical", name))
		}
		if _, dup := seen[name]; dup {
			return core.NewConfigurationError(fmt.Sprintf("variable %q declared more than once", name))
		}
		seen[name] = KindCategorical
	}
	for _, name := range c.NumericalVariables {
		if name == c.TargetVariable {
			return core.NewConfigurationError(fmt.Sprintf("target variable %q also declared numerical", name))
		}
		if _, dup := seen[name]; dup {
			return core.NewConfigurationError(fmt.Sprintf("variable %q declared more than once", name))
		}
		seen[name] = KindNumerical
	}

	for name, kind := range seen {
		spec, ok := c.VariableDetails[name]
		if !ok {
			return core.NewConfigurationError(fmt.Sprintf("variable %q has no details entry", name))
		}
		if spec.Kind != kind {
			return core.NewConfigurationError(fmt.Sprintf("variable %q declared %s but its details say %s", name, kind, spec.Kind))
		}
		if err := spec.Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// IsNumerical reports whether name was declared a numerical variable
func (c *AnalysisConfig) IsNumerical(name string) bool {
	for _, n := range c.NumericalVariables {
		if n == name {
			return true
		}
	}
	return false
}

// IsCategorical reports whether name was declared a categorical variable
func (c *AnalysisConfig) IsCategorical(name string) bool {
	for _, n := range c.CategoricalVariables {
		if n == name {
			return true
		}
	}
	return false
}

// IndicatorSource resolves a one-hot feature name like "region_east" back
// to its source categorical variable and category. Variable names may
// themselves contain the separator, so declared names are matched by
// prefix, longest first.
func (c *AnalysisConfig) IndicatorSource(featureName string) (variable, category string, ok bool) {
	best := ""
	for _, name := range c.CategoricalVariables {
		if strings.HasPrefix(featureName, name+"_") && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, featureName[len(best)+1:], true
}
