package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopkit/paytoggle/internal/testutil"
)

func TestStreamConnection(t *testing.T) {
	server, _, _ := testutil.NewTestServer(t, "secret-key")
	handler := server.Router()
	if err := server.RebuildSnapshot(context.Background()); err != nil {
		t.Fatalf("rebuild snapshot: %v", err)
	}

	reqCtx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/rules/stream", nil).WithContext(reqCtx)
	rr := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		handler.ServeHTTP(rr, req)
	}()

	// Wait briefly for headers and the init event
	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()

	result := rr.Result()
	defer result.Body.Close()

	if ct := result.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected Content-Type 'text/event-stream', got %q", ct)
	}
	if cc := result.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("expected Cache-Control 'no-cache', got %q", cc)
	}
	if conn := result.Header.Get("Connection"); conn != "keep-alive" {
		t.Errorf("expected Connection 'keep-alive', got %q", conn)
	}

	// The handler announces the current ETag before streaming changes.
	body := rr.Body.String()
	if !strings.Contains(body, "event: init") {
		t.Errorf("expected an init event, got %q", body)
	}
	if !strings.Contains(body, `data: W/"`) {
		t.Errorf("expected the init event to carry a weak ETag, got %q", body)
	}
}
