package scorecard

import (
	"testing"
)

func TestRuleDescribe(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Variable: BaseVariable, Condition: ConditionAlways, Adjustment: 1000}, "Start with 1000 points"},
		{Rule{Variable: "region_east", Condition: ConditionPresent, Adjustment: 210, Description: "If region is east"}, "If region is east, Add 210 points"},
		{Rule{Variable: "income", Condition: ConditionAbove, Threshold: 0.7, Adjustment: -350, Description: "If income is above 0.70"}, "If income is above 0.70, Subtract 350 points"},
	}
	for _, test := range tests {
		if got := test.rule.Describe(); got != test.want {
			t.Errorf("Describe() = %q, expected %q", got, test.want)
		}
	}
}

func TestRuleConditionString(t *testing.T) {
	above := Rule{Condition: ConditionAbove, Threshold: 0.7}
	if got := above.ConditionString(); got != "> 0.70" {
		t.Errorf("expected '> 0.70', got %q", got)
	}
	always := Rule{Condition: ConditionAlways}
	if got := always.ConditionString(); got != "always" {
		t.Errorf("expected 'always', got %q", got)
	}
	present := Rule{Condition: ConditionPresent}
	if got := present.ConditionString(); got != "present" {
		t.Errorf("expected 'present', got %q", got)
	}
}

func TestRuleSetValidate(t *testing.T) {
	base := Rule{Variable: BaseVariable, Condition: ConditionAlways, Adjustment: 1000}
	feature := Rule{Variable: "income", Condition: ConditionAbove, Threshold: 0.5, Adjustment: 100}

	if err := (RuleSet{base, feature}).Validate(); err != nil {
		t.Errorf("expected valid rule set, got %v", err)
	}
	if err := (RuleSet{}).Validate(); err == nil {
		t.Error("expected error for empty rule set")
	}
	if err := (RuleSet{feature, base}).Validate(); err == nil {
		t.Error("expected error when base rule is not first")
	}
	if err := (RuleSet{base, base}).Validate(); err == nil {
		t.Error("expected error for duplicate base rule")
	}
}

func TestRuleSetBase(t *testing.T) {
	rs := RuleSet{
		{Variable: BaseVariable, Condition: ConditionAlways, Adjustment: 1000},
		{Variable: "income", Condition: ConditionAbove, Adjustment: 100},
	}
	if rs.Base() != 1000 {
		t.Errorf("expected base 1000, got %d", rs.Base())
	}
	if (RuleSet{}).Base() != 0 {
		t.Error("expected base 0 for empty rule set")
	}
}
