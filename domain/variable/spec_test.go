package variable

import (
	"testing"

	"scorecard/domain/core"
)

func validConfig() *AnalysisConfig {
	return &AnalysisConfig{
		TargetVariable:       "responded",
		CategoricalVariables: []string{"region", "tier"},
		NumericalVariables:   []string{"income"},
		VariableDetails: map[string]Spec{
			"region": UnorderedCategorical(),
			"tier":   OrderedCategorical([]string{"bronze", "silver", "gold"}),
			"income": Numerical(HigherIsBetter),
		},
		SourceIdentifier: "campaign.csv",
	}
}

func TestAnalysisConfigValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"missing source", func(c *AnalysisConfig) { c.SourceIdentifier = "  " }},
		{"missing target", func(c *AnalysisConfig) { c.TargetVariable = "" }},
		{"no predictors", func(c *AnalysisConfig) {
			c.CategoricalVariables = nil
			c.NumericalVariables = nil
		}},
		{"target declared categorical", func(c *AnalysisConfig) {
			c.CategoricalVariables = append(c.CategoricalVariables, "responded")
		}},
		{"target declared numerical", func(c *AnalysisConfig) {
			c.NumericalVariables = append(c.NumericalVariables, "responded")
		}},
		{"duplicate declaration", func(c *AnalysisConfig) {
			c.NumericalVariables = append(c.NumericalVariables, "region")
		}},
		{"missing details", func(c *AnalysisConfig) { delete(c.VariableDetails, "income") }},
		{"kind mismatch", func(c *AnalysisConfig) {
			c.VariableDetails["income"] = UnorderedCategorical()
		}},
		{"ordered without value order", func(c *AnalysisConfig) {
			c.VariableDetails["tier"] = Spec{Kind: KindCategorical, Ordered: true}
		}},
		{"categorical with direction", func(c *AnalysisConfig) {
			c.VariableDetails["region"] = Spec{Kind: KindCategorical, Direction: HigherIsBetter}
		}},
		{"numerical without direction", func(c *AnalysisConfig) {
			c.VariableDetails["income"] = Spec{Kind: KindNumerical}
		}},
		{"unknown kind", func(c *AnalysisConfig) {
			c.VariableDetails["income"] = Spec{Kind: "ratio"}
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validConfig()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !core.IsConfigurationError(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestKindMembership(t *testing.T) {
	cfg := validConfig()
	if !cfg.IsNumerical("income") || cfg.IsNumerical("region") {
		t.Error("IsNumerical misclassified a variable")
	}
	if !cfg.IsCategorical("region") || cfg.IsCategorical("income") {
		t.Error("IsCategorical misclassified a variable")
	}
}

// TestIndicatorSource covers the longest-prefix rule: variable names may
// themselves contain the separator.
func TestIndicatorSource(t *testing.T) {
	cfg := &AnalysisConfig{
		CategoricalVariables: []string{"region", "region_code"},
	}

	tests := []struct {
		feature  string
		variable string
		category string
		ok       bool
	}{
		{"region_east", "region", "east", true},
		{"region_code_7", "region_code", "7", true},
		{"region_code_MISSING", "region_code", "MISSING", true},
		{"income", "", "", false},
		{"region", "", "", false},
	}

	for _, test := range tests {
		variable, category, ok := cfg.IndicatorSource(test.feature)
		if variable != test.variable || category != test.category || ok != test.ok {
			t.Errorf("IndicatorSource(%q) = (%q, %q, %v), expected (%q, %q, %v)",
				test.feature, variable, category, ok, test.variable, test.category, test.ok)
		}
	}
}
