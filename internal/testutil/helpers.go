package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopkit/paytoggle/internal/api"
	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/nonce"
	"github.com/shopkit/paytoggle/internal/rules"
	"github.com/shopkit/paytoggle/internal/store"
	"github.com/shopkit/paytoggle/internal/zones"
)

// TestNonceSecret is the fixed secret test servers mint nonces with.
const TestNonceSecret = "test-nonce-secret"

// TestZones returns a small zone catalog: a Texas zone, a US-wide zone, and
// a Canada zone.
func TestZones() *zones.StaticCatalog {
	return zones.NewStaticCatalog([]zones.Zone{
		{ID: "1", Name: "Texas", Locations: []zones.Location{zones.ParseLocationCode("US:TX")}},
		{ID: "2", Name: "United States", Locations: []zones.Location{{Country: "US"}}},
		{ID: "3", Name: "Canada", Locations: []zones.Location{{Country: "CA"}}},
	})
}

// TestGateways returns a catalog with cod, bacs and a disabled cheque.
func TestGateways() *gateways.StaticCatalog {
	return gateways.NewStaticCatalog([]gateways.Gateway{
		{ID: "cod", Title: "Cash on delivery", Enabled: true},
		{ID: "bacs", Title: "Direct bank transfer", Enabled: true},
		{ID: "cheque", Title: "Check payments", Enabled: false},
	})
}

// NewTestServer creates an API server over an in-memory store with fixed
// catalogs and a deterministic nonce secret.
func NewTestServer(t *testing.T, adminKey string) (*api.Server, *store.MemoryStore, *nonce.Service) {
	t.Helper()
	memStore := store.NewMemoryStore()
	nonces := nonce.New(TestNonceSecret, time.Hour)
	server := api.NewServer(api.Deps{
		Store:       memStore,
		Zones:       zones.NewResolver(TestZones()),
		Gateways:    TestGateways(),
		Nonces:      nonces,
		AdminAPIKey: adminKey,
		Logger:      zerolog.Nop(),
	})
	return server, memStore, nonces
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	Headers     map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		ct := r.ContentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// FormBody encodes parallel form arrays the way the settings form submits
// them. Value order within each key is preserved.
func FormBody(pairs map[string][]string) string {
	return url.Values(pairs).Encode()
}

// SeedRules stores a rule set directly, bypassing the HTTP surface.
func SeedRules(ctx context.Context, st store.Store, rs rules.RuleSet) error {
	return st.SaveRules(ctx, rs)
}
