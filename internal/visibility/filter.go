// Package visibility implements the checkout-time gateway filter and the
// storefront state lookup over an administrator-authored rule set. Both are
// pure functions: all validation happens at the HTTP boundary and no input
// combination here is an error.
package visibility

import (
	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/rules"
)

// MethodsToHide returns the payment method ids the rule set suppresses for
// the resolved region code. A rule contributes its method exactly when it
// targets the code, is marked hide, and names a method. Show rules are inert
// here: they represent a reversible admin choice, not an allow-list. A hide
// rule with an empty method is likewise inert.
func MethodsToHide(rs rules.RuleSet, code string) map[string]struct{} {
	hidden := make(map[string]struct{})
	for _, r := range rs {
		if r.Region == code && r.Visibility == rules.Hide && r.Method != "" {
			hidden[r.Method] = struct{}{}
		}
	}
	return hidden
}

// Apply returns available with every method the rule set hides for code
// removed. When resolved is false the input map is returned untouched: an
// unresolvable destination never hides anything (fail open). The input map
// is never mutated.
func Apply(available map[string]gateways.Gateway, rs rules.RuleSet, code string, resolved bool) map[string]gateways.Gateway {
	if !resolved {
		return available
	}

	hidden := MethodsToHide(rs, code)
	if len(hidden) == 0 {
		return available
	}

	out := make(map[string]gateways.Gateway, len(available))
	for id, gw := range available {
		if _, drop := hidden[id]; !drop {
			out[id] = gw
		}
	}
	return out
}
