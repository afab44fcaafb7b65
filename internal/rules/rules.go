// Package rules defines the payment-visibility rule model: which payment
// methods an administrator wants hidden (or explicitly shown) for which
// shipping region.
package rules

import "strings"

// Visibility says what a rule does to its payment method.
type Visibility string

const (
	Show Visibility = "show"
	Hide Visibility = "hide"
)

// ParseVisibility maps a raw form value to a Visibility. Anything other than
// "hide" (case-insensitively, ignoring surrounding whitespace) means "show",
// including the empty string.
func ParseVisibility(s string) Visibility {
	if strings.EqualFold(strings.TrimSpace(s), string(Hide)) {
		return Hide
	}
	return Show
}

// Rule is one row of the admin settings table. Region and Method are opaque
// identifiers from the zone and gateway catalogs; the core never validates
// them against those catalogs.
type Rule struct {
	Region     string     `json:"shipping_region" yaml:"shipping_region"`
	Method     string     `json:"method" yaml:"method"`
	Visibility Visibility `json:"visibility" yaml:"visibility"`
}

// RuleSet is an ordered list of rules. The order mirrors the admin table rows;
// it only matters for which rule FindByState returns first when two rows name
// the same region. Duplicates are tolerated, not merged.
type RuleSet []Rule

// Equal reports whether two rule sets have the same rules in the same order.
func (rs RuleSet) Equal(other RuleSet) bool {
	if len(rs) != len(other) {
		return false
	}
	for i := range rs {
		if rs[i] != other[i] {
			return false
		}
	}
	return true
}

// NormalizeRegion is the comparison form used by the state lookup:
// surrounding whitespace stripped, lower-cased.
func NormalizeRegion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
