package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/telemetry"
	"github.com/shopkit/paytoggle/internal/visibility"
)

type checkoutDestination struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

type checkoutRequest struct {
	Destination checkoutDestination `json:"destination"`
	// GatewayIDs optionally narrows the catalog to the gateways the caller
	// is about to render.
	GatewayIDs []string `json:"gatewayIds,omitempty"`
}

type checkoutResponse struct {
	Gateways map[string]gateways.Gateway `json:"gateways"`
	Hidden   []string                    `json:"hidden"`
	Zone     *string                     `json:"zone"` // null when unresolved
}

// handleCheckoutGateways is the server-side filter hook: given the shopper's
// destination, return the gateway catalog minus whatever the rules hide for
// their resolved zone. The destination arrives as explicit parameters; the
// service holds no shopper session state.
func (s *Server) handleCheckoutGateways(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	avail, err := s.gateways.Available(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("gateway catalog")
		InternalError(w, r, "gateway catalog unavailable")
		return
	}
	if len(req.GatewayIDs) > 0 {
		subset := make(map[string]gateways.Gateway, len(req.GatewayIDs))
		for _, id := range req.GatewayIDs {
			if gw, ok := avail[id]; ok {
				subset[id] = gw
			}
		}
		avail = subset
	}

	code, resolved, err := s.zones.Resolve(r.Context(), req.Destination.Country, req.Destination.State)
	if err != nil {
		// Zone catalog trouble must never hide payment methods.
		s.log.Warn().Err(err).Msg("zone resolution failed, failing open")
		code, resolved = "", false
	}

	rs, err := s.store.LoadRules(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load rules")
		InternalError(w, r, "loading rules failed")
		return
	}

	filtered := visibility.Apply(avail, rs, code, resolved)

	hidden := make([]string, 0)
	for id := range avail {
		if _, ok := filtered[id]; !ok {
			hidden = append(hidden, id)
		}
	}
	sort.Strings(hidden)

	telemetry.CheckoutEvaluations.WithLabelValues(strconv.FormatBool(resolved)).Inc()
	telemetry.MethodsHidden.Add(float64(len(hidden)))

	var zone *string
	if resolved {
		zone = &code
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Gateways: filtered,
		Hidden:   hidden,
		Zone:     zone,
	})
}
