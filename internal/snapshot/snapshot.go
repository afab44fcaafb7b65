// Package snapshot holds an immutable, atomically swapped view of the current
// rule set. Checkout-facing reads go through here so a save in one request
// never blocks a filter evaluation in another; the ETag lets clients skip
// refetching an unchanged set.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/shopkit/paytoggle/internal/rules"
)

// View is one immutable rule-set snapshot.
type View struct {
	ETag      string        `json:"etag"`
	Rules     rules.RuleSet `json:"rules"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

var current unsafe.Pointer // *View

// Load returns the current snapshot. Before the first Update it returns an
// empty view with an empty ETag.
func Load() *View {
	ptr := atomic.LoadPointer(&current)
	if ptr == nil {
		return &View{ETag: "", Rules: rules.RuleSet{}, UpdatedAt: time.Now().UTC()}
	}
	return (*View)(ptr)
}

func store(v *View) { atomic.StorePointer(&current, unsafe.Pointer(v)) }

// Build creates a snapshot for the given rule set with a weak ETag derived
// from its JSON encoding.
func Build(rs rules.RuleSet) *View {
	if rs == nil {
		rs = rules.RuleSet{}
	}
	blob, _ := json.Marshal(rs)
	sum := sha256.Sum256(blob)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return &View{ETag: etag, Rules: rs, UpdatedAt: time.Now().UTC()}
}

// Update swaps in a new snapshot and notifies subscribers.
func Update(v *View) {
	store(v)
	publishChange(Change{ETag: v.ETag, Rules: len(v.Rules)})
}
