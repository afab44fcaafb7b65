package webhook

import (
	"time"

	"github.com/shopkit/paytoggle/internal/rules"
)

// Event types delivered to subscribed endpoints.
const (
	EventRulesUpdated = "rules.updated"
)

// Event is one webhook payload: a full copy of the rule set after a save,
// since saves always replace the whole set.
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"event"`
	Timestamp time.Time     `json:"timestamp"`
	ETag      string        `json:"etag"`
	Rules     rules.RuleSet `json:"rules"`
	Metadata  Metadata      `json:"metadata"`
}

// Metadata carries request context about the save that produced the event.
type Metadata struct {
	Actor     string `json:"actor,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Endpoint is one configured webhook target.
type Endpoint struct {
	URL    string
	Secret string
}
