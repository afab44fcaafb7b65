// Package audit records administrative changes to the rule set: who replaced
// it, from where, and what the resulting snapshot looked like. Records are
// best-effort; a failing sink never fails the save that produced the record.
package audit

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Actions recorded by this service.
const (
	ActionRulesSave = "rules.save"
)

// Entry is one audit record.
type Entry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	RowCount  int       `json:"rowCount"`
	ETag      string    `json:"etag,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEntry builds an entry from the inbound request that triggered the change.
func NewEntry(r *http.Request, action, actor string, rowCount int, etag string) Entry {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Actor:     actor,
		IPAddress: ip,
		RequestID: middleware.GetReqID(r.Context()),
		RowCount:  rowCount,
		ETag:      etag,
		CreatedAt: time.Now().UTC(),
	}
}

// Sink receives audit entries.
type Sink interface {
	Write(ctx context.Context, e Entry) error
}

// Service fans entries out to its sinks.
type Service struct {
	sinks []Sink
	log   zerolog.Logger
}

// NewService creates a Service writing to the given sinks.
func NewService(log zerolog.Logger, sinks ...Sink) *Service {
	return &Service{
		sinks: sinks,
		log:   log.With().Str("component", "audit").Logger(),
	}
}

// Record writes the entry to every sink. Sink failures are logged, not
// returned: the admin operation already succeeded.
func (s *Service) Record(ctx context.Context, e Entry) {
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, e); err != nil {
			s.log.Error().Err(err).Str("audit_id", e.ID).Msg("audit sink write failed")
		}
	}
}
