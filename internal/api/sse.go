package api

import (
	"fmt"
	"net/http"

	"github.com/shopkit/paytoggle/internal/snapshot"
	"github.com/shopkit/paytoggle/internal/telemetry"
)

// handleStream pushes rule-set change notifications over SSE. Each event
// carries only the new ETag; clients refetch the snapshot when it changes.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		InternalError(w, r, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	telemetry.SSEClients.Inc()
	defer telemetry.SSEClients.Dec()

	ch, unsub := snapshot.Subscribe()
	defer unsub()

	// init event so the client knows the ETag it is starting from
	fmt.Fprintf(w, "event: init\ndata: %s\n\n", snapshot.Load().ETag)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: rules\ndata: %s\n\n", change.ETag)
			flusher.Flush()
		}
	}
}
