package visibility

import (
	"testing"

	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/rules"
)

func available(ids ...string) map[string]gateways.Gateway {
	m := make(map[string]gateways.Gateway, len(ids))
	for _, id := range ids {
		m[id] = gateways.Gateway{ID: id, Title: id, Enabled: true}
	}
	return m
}

func TestMethodsToHide_ExactSet(t *testing.T) {
	rs := rules.RuleSet{
		{Region: "8", Method: "cod", Visibility: rules.Hide},
		{Region: "8", Method: "bacs", Visibility: rules.Show}, // show rules never suppress
		{Region: "5", Method: "cheque", Visibility: rules.Hide},
		{Region: "8", Method: "", Visibility: rules.Hide}, // empty method is inert
		{Region: "8", Method: "cod", Visibility: rules.Hide}, // duplicate unions away
	}

	hidden := MethodsToHide(rs, "8")
	if len(hidden) != 1 {
		t.Fatalf("expected exactly 1 hidden method, got %d: %v", len(hidden), hidden)
	}
	if _, ok := hidden["cod"]; !ok {
		t.Error("cod should be hidden for zone 8")
	}
}

func TestMethodsToHide_UnionsMatchingRules(t *testing.T) {
	rs := rules.RuleSet{
		{Region: "8", Method: "cod", Visibility: rules.Hide},
		{Region: "8", Method: "bacs", Visibility: rules.Hide},
	}
	hidden := MethodsToHide(rs, "8")
	if len(hidden) != 2 {
		t.Fatalf("expected 2 hidden methods, got %d", len(hidden))
	}
}

func TestApply_HidesMatchedMethod(t *testing.T) {
	// Scenario A: zone 8 hides cod, bacs survives.
	rs := rules.RuleSet{{Region: "8", Method: "cod", Visibility: rules.Hide}}

	got := Apply(available("cod", "bacs"), rs, "8", true)
	if len(got) != 1 {
		t.Fatalf("expected 1 gateway, got %d", len(got))
	}
	if _, ok := got["bacs"]; !ok {
		t.Error("bacs should survive filtering")
	}
}

func TestApply_NoMatchLeavesGatewaysUnchanged(t *testing.T) {
	// Scenario B: resolved zone has no rules.
	rs := rules.RuleSet{{Region: "8", Method: "cod", Visibility: rules.Hide}}

	got := Apply(available("cod", "bacs"), rs, "5", true)
	if len(got) != 2 {
		t.Errorf("expected 2 gateways, got %d", len(got))
	}
}

func TestApply_ShowRulesAreInert(t *testing.T) {
	// Scenario C: a show rule never hides its method.
	rs := rules.RuleSet{{Region: "CA", Method: "cod", Visibility: rules.Show}}

	got := Apply(available("cod"), rs, "CA", true)
	if _, ok := got["cod"]; !ok {
		t.Error("show rule must not hide cod")
	}
}

func TestApply_FailOpenOnUnresolvedZone(t *testing.T) {
	rs := rules.RuleSet{{Region: "8", Method: "cod", Visibility: rules.Hide}}
	in := available("cod", "bacs")

	got := Apply(in, rs, "", false)
	if len(got) != len(in) {
		t.Errorf("unresolved zone must not filter: got %d gateways, want %d", len(got), len(in))
	}
}

func TestApply_EmptyRuleSetHidesNothing(t *testing.T) {
	in := available("cod", "bacs")
	got := Apply(in, rules.RuleSet{}, "8", true)
	if len(got) != 2 {
		t.Errorf("empty rule set must hide nothing, got %d gateways", len(got))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rs := rules.RuleSet{{Region: "8", Method: "cod", Visibility: rules.Hide}}
	in := available("cod", "bacs")

	_ = Apply(in, rs, "8", true)
	if len(in) != 2 {
		t.Error("Apply mutated its input map")
	}
}
