package store

import (
	"context"
	"testing"

	"github.com/shopkit/paytoggle/internal/rules"
)

func TestMemoryStore_LoadEmpty(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	rs, err := st.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rs) != 0 {
		t.Errorf("expected empty rule set before first save, got %d rules", len(rs))
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	want := rules.RuleSet{
		{Region: "8", Method: "cod", Visibility: rules.Hide},
		{Region: "CA", Method: "bacs", Visibility: rules.Show},
	}
	if err := st.SaveRules(ctx, want); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	got, err := st.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first := rules.RuleSet{
		{Region: "8", Method: "cod", Visibility: rules.Hide},
		{Region: "5", Method: "bacs", Visibility: rules.Hide},
	}
	second := rules.RuleSet{
		{Region: "TX", Method: "cheque", Visibility: rules.Show},
	}

	if err := st.SaveRules(ctx, first); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}
	if err := st.SaveRules(ctx, second); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	got, err := st.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	// Full replace, not a merge.
	if !got.Equal(second) {
		t.Errorf("expected second save to fully replace the first: got %+v", got)
	}
}

func TestMemoryStore_SaveEmptySet(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.SaveRules(ctx, rules.RuleSet{{Region: "8", Method: "cod", Visibility: rules.Hide}}); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}
	if err := st.SaveRules(ctx, rules.RuleSet{}); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	got, err := st.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("saving an empty set should clear all rules, got %d", len(got))
	}
}

func TestMemoryStore_Options(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := st.GetOption(ctx, "missing"); err != nil || found {
		t.Errorf("GetOption(missing) = found=%v err=%v, want absent", found, err)
	}

	if err := st.SetOption(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatalf("SetOption failed: %v", err)
	}
	value, found, err := st.GetOption(ctx, "k")
	if err != nil || !found {
		t.Fatalf("GetOption(k) = found=%v err=%v", found, err)
	}
	if string(value) != `"v"` {
		t.Errorf("GetOption(k) = %q", value)
	}
}
