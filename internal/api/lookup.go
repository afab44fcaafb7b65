package api

import (
	"net/http"
	"strconv"

	"github.com/shopkit/paytoggle/internal/rules"
	"github.com/shopkit/paytoggle/internal/telemetry"
	"github.com/shopkit/paytoggle/internal/visibility"
)

type lookupData struct {
	// State is the matched rule, {} when nothing matched, and absent on
	// failures.
	State   any    `json:"state,omitempty"`
	Message string `json:"message"`
}

type lookupEnvelope struct {
	Success bool       `json:"success"`
	Data    lookupData `json:"data"`
}

// handleStateData answers the storefront's "what is the rule for this state"
// query, fired when the shopper changes their shipping state. Matching is
// case- and whitespace-insensitive against the stored region string.
func (s *Server) handleStateData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tok := q.Get("nonce")
	if tok == "" {
		s.lookupError(w, "Nonce not set")
		return
	}
	if !s.nonces.Verify(tok, ActionStateLookup) {
		s.lookupError(w, "Nonce verification failed")
		return
	}

	state := rules.Sanitize(q.Get("state"))
	if state == "" {
		s.lookupError(w, "State not set")
		return
	}

	rs, err := s.store.LoadRules(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load rules")
		InternalError(w, r, "loading rules failed")
		return
	}

	rule, ok := visibility.FindByState(rs, state)
	telemetry.StateLookups.WithLabelValues(strconv.FormatBool(ok)).Inc()

	var matched any = struct{}{} // serializes as {} when nothing matched
	if ok {
		matched = rule
	}
	writeJSON(w, http.StatusOK, lookupEnvelope{
		Success: true,
		Data: lookupData{
			State:   matched,
			Message: "State data retrieved successfully",
		},
	})
}

// lookupError ships the failure inside the JSON envelope with a 200: the
// storefront script keys off the success flag, not the status code.
func (s *Server) lookupError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, lookupEnvelope{
		Success: false,
		Data:    lookupData{Message: msg},
	})
}
