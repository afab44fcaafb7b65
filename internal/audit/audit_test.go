package audit

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type captureSink struct {
	mu      sync.Mutex
	entries []Entry
	fail    bool
}

func (c *captureSink) Write(ctx context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("sink down")
	}
	c.entries = append(c.entries, e)
	return nil
}

func TestNewEntry(t *testing.T) {
	r := httptest.NewRequest("POST", "/admin/settings", nil)
	r.RemoteAddr = "192.0.2.7:41234"

	e := NewEntry(r, ActionRulesSave, "admin", 3, `W/"abc"`)
	if e.ID == "" {
		t.Error("entry missing id")
	}
	if e.Action != ActionRulesSave || e.Actor != "admin" || e.RowCount != 3 {
		t.Errorf("entry = %+v", e)
	}
	if e.IPAddress != "192.0.2.7" {
		t.Errorf("ip = %q, want host without port", e.IPAddress)
	}
	if e.CreatedAt.IsZero() {
		t.Error("entry missing timestamp")
	}
}

func TestService_Record(t *testing.T) {
	sink := &captureSink{}
	svc := NewService(zerolog.Nop(), sink)

	r := httptest.NewRequest("POST", "/admin/settings", nil)
	svc.Record(context.Background(), NewEntry(r, ActionRulesSave, "admin", 2, ""))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.entries) != 1 {
		t.Fatalf("sink saw %d entries, want 1", len(sink.entries))
	}
}

func TestService_SinkFailureIsSwallowed(t *testing.T) {
	failing := &captureSink{fail: true}
	working := &captureSink{}
	svc := NewService(zerolog.Nop(), failing, working)

	r := httptest.NewRequest("POST", "/admin/settings", nil)
	// Must not panic or abort remaining sinks.
	svc.Record(context.Background(), NewEntry(r, ActionRulesSave, "admin", 1, ""))

	working.mu.Lock()
	defer working.mu.Unlock()
	if len(working.entries) != 1 {
		t.Error("later sink skipped after earlier sink failure")
	}
}
