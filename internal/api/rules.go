package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopkit/paytoggle/internal/rules"
	"github.com/shopkit/paytoggle/internal/snapshot"
)

const maxRulesBody = 1 << 20 // 1 MiB; the expected set is tens of rows

type rulesResponse struct {
	Rules rules.RuleSet `json:"rules"`
	ETag  string        `json:"etag"`
}

type putRulesResponse struct {
	OK    bool   `json:"ok"`
	Count int    `json:"count"`
	ETag  string `json:"etag"`
}

// handleGetRules returns the persisted rule set for the admin UI. The ETag
// is derived from the loaded set, not the process-local snapshot, so the
// pair stays consistent even when another replica wrote last.
func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	rs, err := s.store.LoadRules(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load rules")
		InternalError(w, r, "loading rules failed")
		return
	}
	writeJSON(w, http.StatusOK, rulesResponse{Rules: rs, ETag: snapshot.Build(rs).ETag})
}

// handlePutRules replaces the entire rule set from a JSON array of
// self-contained rows. Same overwrite semantics as the form path; the rows
// just can't misalign.
func (s *Server) handlePutRules(w http.ResponseWriter, r *http.Request) {
	var rows []rules.Row
	body := http.MaxBytesReader(w, r.Body, maxRulesBody)
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "body must be a JSON array of rule rows")
		return
	}

	rs := rules.FromRows(rows)
	if err := s.store.SaveRules(r.Context(), rs); err != nil {
		s.log.Error().Err(err).Msg("save rules")
		InternalError(w, r, "saving rules failed")
		return
	}
	etag := s.afterSave(r, rs, "admin-api")

	writeJSON(w, http.StatusOK, putRulesResponse{OK: true, Count: len(rs), ETag: etag})
}

// handleSnapshot serves the in-memory rule snapshot with ETag support so
// polling clients can cheaply confirm nothing changed.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := snapshot.Load()
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", snap.ETag)
	writeJSON(w, http.StatusOK, snap)
}
