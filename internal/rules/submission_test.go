package rules

import "testing"

func TestParseSubmission(t *testing.T) {
	rs := ParseSubmission(
		[]string{"8", "CA"},
		[]string{"cod", "bacs"},
		[]string{"hide", "show"},
	)

	want := RuleSet{
		{Region: "8", Method: "cod", Visibility: Hide},
		{Region: "CA", Method: "bacs", Visibility: Show},
	}
	if !rs.Equal(want) {
		t.Errorf("ParseSubmission = %+v, want %+v", rs, want)
	}
}

func TestParseSubmission_ClampsToRegionLength(t *testing.T) {
	// Mismatched lengths: the region array drives the row count, missing
	// entries become empty method / show.
	rs := ParseSubmission(
		[]string{"CA", "TX"},
		[]string{"cod"},
		[]string{"hide", "show"},
	)

	if len(rs) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs))
	}
	if rs[0].Method != "cod" || rs[0].Visibility != Hide {
		t.Errorf("rule 0 = %+v", rs[0])
	}
	if rs[1].Method != "" || rs[1].Visibility != Show {
		t.Errorf("rule 1 = %+v, want empty method and show", rs[1])
	}

	// The other direction: extra methods beyond the region count are dropped.
	rs = ParseSubmission([]string{"CA"}, []string{"cod", "bacs"}, nil)
	if len(rs) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rs))
	}
	if rs[0].Visibility != Show {
		t.Errorf("missing visibility should default to show, got %q", rs[0].Visibility)
	}
}

func TestParseSubmission_Empty(t *testing.T) {
	rs := ParseSubmission(nil, nil, nil)
	if len(rs) != 0 {
		t.Errorf("expected empty rule set, got %d rules", len(rs))
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  TX  ", "TX"},
		{"cod\x00", "cod"},
		{"ba\ncs", "bacs"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromRows(t *testing.T) {
	rs := FromRows([]Row{
		{Region: " TX ", Method: "cod", Visibility: "hide"},
		{Region: "CA", Method: "bacs", Visibility: ""},
	})

	want := RuleSet{
		{Region: "TX", Method: "cod", Visibility: Hide},
		{Region: "CA", Method: "bacs", Visibility: Show},
	}
	if !rs.Equal(want) {
		t.Errorf("FromRows = %+v, want %+v", rs, want)
	}
}
