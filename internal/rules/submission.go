package rules

import "strings"

// Sanitize strips surrounding whitespace and drops control characters from a
// submitted form value.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// ParseSubmission pairs the three parallel form arrays of the legacy admin
// form into a rule set. Index i across all three arrays forms one rule.
//
// The regions array drives the row count: when methods or visibility are
// shorter, the missing tail contributes an empty method and "show". A longer
// methods/visibility array is clamped. Regions ["CA","TX"] with methods
// ["cod"] therefore yield two rules, the second with an empty method.
func ParseSubmission(regions, methods, visibility []string) RuleSet {
	rs := make(RuleSet, 0, len(regions))
	for i, region := range regions {
		var method, vis string
		if i < len(methods) {
			method = methods[i]
		}
		if i < len(visibility) {
			vis = visibility[i]
		}
		rs = append(rs, Rule{
			Region:     Sanitize(region),
			Method:     Sanitize(method),
			Visibility: ParseVisibility(vis),
		})
	}
	return rs
}

// Row is one self-contained rule row as submitted by the JSON admin API.
// Unlike the legacy form arrays, a row carries all three fields together, so
// a dropped field cannot misalign the rows that follow it.
type Row struct {
	Region     string `json:"shipping_region" yaml:"shipping_region"`
	Method     string `json:"method" yaml:"method"`
	Visibility string `json:"visibility" yaml:"visibility"`
}

// FromRows converts structured rows into a rule set, applying the same
// sanitation and visibility defaulting as the form path.
func FromRows(rows []Row) RuleSet {
	rs := make(RuleSet, 0, len(rows))
	for _, row := range rows {
		rs = append(rs, Rule{
			Region:     Sanitize(row.Region),
			Method:     Sanitize(row.Method),
			Visibility: ParseVisibility(row.Visibility),
		})
	}
	return rs
}
