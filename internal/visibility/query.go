package visibility

import "github.com/shopkit/paytoggle/internal/rules"

// FindByState returns the first rule (in rule-set order) whose region equals
// the raw state string, comparing with surrounding whitespace stripped and
// case folded. ok is false when no rule matches.
//
// This matches against the stored region string directly, not against a
// resolved zone; it backs the storefront lookup that fires when the shopper
// changes their shipping state.
func FindByState(rs rules.RuleSet, rawState string) (rules.Rule, bool) {
	want := rules.NormalizeRegion(rawState)
	for _, r := range rs {
		if rules.NormalizeRegion(r.Region) == want {
			return r, true
		}
	}
	return rules.Rule{}, false
}
