package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopkit/paytoggle/internal/api"
	"github.com/shopkit/paytoggle/internal/testutil"
)

func TestHealthz(t *testing.T) {
	server, _, _ := testutil.NewTestServer(t, "secret-key")
	rr := (&testutil.HTTPRequest{Method: "GET", Path: "/healthz"}).Do(t, server.Router())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("expected body %q, got %q", "ok", rr.Body.String())
	}
}

func TestNonceEndpoint(t *testing.T) {
	server, _, nonces := testutil.NewTestServer(t, "secret-key")
	router := server.Router()

	t.Run("default action", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{Method: "GET", Path: "/nonce"}).Do(t, router)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["action"] != api.ActionStateLookup {
			t.Errorf("expected action %q, got %q", api.ActionStateLookup, resp["action"])
		}
		if !nonces.Verify(resp["nonce"], api.ActionStateLookup) {
			t.Error("issued nonce should verify for the state-lookup action")
		}
	})

	t.Run("settings action requires admin key", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{Method: "GET", Path: "/nonce?action=update-settings"}).Do(t, router)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("settings action with admin key", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{
			Method:  "GET",
			Path:    "/nonce?action=update-settings",
			Headers: map[string]string{"Authorization": "Bearer secret-key"},
		}).Do(t, router)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !nonces.Verify(resp["nonce"], api.ActionUpdateSettings) {
			t.Error("issued nonce should verify for the update-settings action")
		}
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{Method: "GET", Path: "/nonce?action=delete-everything"}).Do(t, router)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestAdminAuth(t *testing.T) {
	server, _, _ := testutil.NewTestServer(t, "secret-key")
	router := server.Router()

	t.Run("missing token", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{Method: "GET", Path: "/v1/rules"}).Do(t, router)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{
			Method:  "GET",
			Path:    "/v1/rules",
			Headers: map[string]string{"Authorization": "Bearer wrong-key"},
		}).Do(t, router)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		rr := (&testutil.HTTPRequest{
			Method:  "GET",
			Path:    "/v1/rules",
			Headers: map[string]string{"Authorization": "Bearer secret-key"},
		}).Do(t, router)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
	})
}
