package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/shopkit/paytoggle/internal/audit"
	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/nonce"
	"github.com/shopkit/paytoggle/internal/rules"
	"github.com/shopkit/paytoggle/internal/snapshot"
	"github.com/shopkit/paytoggle/internal/store"
	"github.com/shopkit/paytoggle/internal/telemetry"
	"github.com/shopkit/paytoggle/internal/webhook"
	"github.com/shopkit/paytoggle/internal/zones"
)

// Nonce actions minted and verified by this server.
const (
	ActionStateLookup    = "state-lookup"
	ActionUpdateSettings = "update-settings"
)

// Deps bundles the collaborators the server needs. Audit and Webhooks are
// optional; everything else must be set.
type Deps struct {
	Store           store.Store
	Zones           *zones.Resolver
	Gateways        gateways.Catalog
	Nonces          *nonce.Service
	Audit           *audit.Service
	Webhooks        *webhook.Dispatcher
	AdminAPIKey     string
	SettingsURL     string // redirect target after an admin form save
	LookupRatePerIP int    // requests per minute, 0 disables the limiter
	Logger          zerolog.Logger
}

type Server struct {
	store           store.Store
	zones           *zones.Resolver
	gateways        gateways.Catalog
	nonces          *nonce.Service
	audit           *audit.Service
	webhooks        *webhook.Dispatcher
	adminAPIKey     string
	settingsURL     string
	lookupRatePerIP int
	log             zerolog.Logger
}

func NewServer(d Deps) *Server {
	if d.SettingsURL == "" {
		d.SettingsURL = "/admin/settings"
	}
	return &Server{
		store:           d.Store,
		zones:           d.Zones,
		gateways:        d.Gateways,
		nonces:          d.Nonces,
		audit:           d.Audit,
		webhooks:        d.Webhooks,
		adminAPIKey:     d.AdminAPIKey,
		settingsURL:     d.SettingsURL,
		lookupRatePerIP: d.LookupRatePerIP,
		log:             d.Logger.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(telemetry.Middleware)

	// long-lived change stream; must stay outside the request timeout
	r.Get("/v1/rules/stream", s.handleStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		// health
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		// public: nonce issuance for the storefront and admin page scripts
		r.Get("/nonce", s.handleNonce)

		// public: storefront state lookup, rate limited per IP
		r.Group(func(r chi.Router) {
			if s.lookupRatePerIP > 0 {
				r.Use(httprate.LimitByIP(s.lookupRatePerIP, time.Minute))
			}
			r.Get("/v1/state-data", s.handleStateData)
		})

		// checkout-time gateway filter
		r.Post("/v1/checkout/gateways", s.handleCheckoutGateways)

		// public: snapshot with ETag support
		r.Get("/v1/rules/snapshot", s.handleSnapshot)

		// admin (protected): rule set read/replace
		r.Get("/v1/rules", s.authAdmin(s.handleGetRules))
		r.Put("/v1/rules", s.authAdmin(s.handlePutRules))

		// admin: legacy settings form post; bearer key plus its nonce field
		r.Post("/admin/settings", s.authAdmin(s.handleUpdateSettings))
	})

	return r
}

// handleNonce issues a token for one of the known actions. The page renderers
// that would normally embed the token live outside this service, so they
// fetch it here instead. Settings nonces are only minted for holders of the
// admin key; a nonce alone must never be enough to reach a save.
func (s *Server) handleNonce(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		action = ActionStateLookup
	}
	if action != ActionStateLookup && action != ActionUpdateSettings {
		BadRequestError(w, r, ErrCodeBadRequest, "unknown nonce action")
		return
	}
	if action == ActionUpdateSettings && !s.isAdmin(r) {
		UnauthorizedError(w, r, "admin token required for this action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"action": action,
		"nonce":  s.nonces.Create(action),
	})
}

// afterSave swaps the snapshot and fans out the bookkeeping every successful
// save shares, regardless of which endpoint performed it.
func (s *Server) afterSave(r *http.Request, rs rules.RuleSet, actor string) string {
	view := snapshot.Build(rs)
	snapshot.Update(view)
	telemetry.SnapshotRules.Set(float64(len(rs)))

	if s.audit != nil {
		s.audit.Record(r.Context(), audit.NewEntry(r, audit.ActionRulesSave, actor, len(rs), view.ETag))
	}
	if s.webhooks != nil {
		s.webhooks.Dispatch(webhook.NewRulesUpdatedEvent(rs, view.ETag, webhook.Metadata{
			Actor:     actor,
			IPAddress: r.RemoteAddr,
			RequestID: middleware.GetReqID(r.Context()),
		}))
	}
	return view.ETag
}

// RebuildSnapshot loads the persisted rule set and swaps the atomic snapshot.
// Called once at startup so reads have a view before the first save.
func (s *Server) RebuildSnapshot(ctx context.Context) error {
	rs, err := s.store.LoadRules(ctx)
	if err != nil {
		return err
	}
	snapshot.Update(snapshot.Build(rs))
	telemetry.SnapshotRules.Set(float64(len(rs)))
	return nil
}

// ---- middleware ----

func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := bearerToken(r)
		if got == "" {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}
		// constant-time compare
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.adminAPIKey)) != 1 {
			ForbiddenError(w, r, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// isAdmin reports whether the request carries the admin bearer key.
func (s *Server) isAdmin(r *http.Request) bool {
	got := bearerToken(r)
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(s.adminAPIKey)) == 1
}

func bearerToken(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
}
