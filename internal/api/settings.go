package api

import (
	"net/http"

	"github.com/shopkit/paytoggle/internal/rules"
)

// Form field names preserved from the storefront markup, which submits
// array-style fields; existing admin pages keep working unchanged.
const (
	fieldNonce      = "tpbs_nonce_field"
	fieldRegion     = "tpbs_shipping_region[]"
	fieldMethod     = "tpbs_payment_method[]"
	fieldVisibility = "payment_visibility[]"
)

// handleUpdateSettings processes the legacy admin settings form: verify the
// anti-forgery field, pair the three parallel arrays into rules, overwrite
// the persisted set, and bounce the browser back to the settings page.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError(w, r, ErrCodeBadRequest, "malformed form submission")
		return
	}

	tok := r.PostForm.Get(fieldNonce)
	if tok == "" || !s.nonces.Verify(tok, ActionUpdateSettings) {
		// Hard abort, mirroring the original error page on a bad token.
		http.Error(w, "Invalid nonce.", http.StatusForbidden)
		return
	}

	rs := rules.ParseSubmission(
		r.PostForm[fieldRegion],
		r.PostForm[fieldMethod],
		r.PostForm[fieldVisibility],
	)

	if err := s.store.SaveRules(r.Context(), rs); err != nil {
		s.log.Error().Err(err).Msg("save settings")
		InternalError(w, r, "saving settings failed")
		return
	}
	s.afterSave(r, rs, "admin-form")

	http.Redirect(w, r, s.settingsURL, http.StatusFound)
}
