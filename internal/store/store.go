// Package store persists the rule set in a generic key/value options store.
// The rule set lives under a single key and is always replaced whole: saves
// are unconditional overwrites, concurrent saves race under last-write-wins.
package store

import (
	"context"

	"github.com/shopkit/paytoggle/internal/rules"
)

// SettingsKey is the option key the rule set is persisted under.
const SettingsKey = "tpbs_payment_settings"

// Store defines the persistence interface for payment-visibility rules.
// Implementations must be safe for concurrent use.
type Store interface {
	// LoadRules returns the persisted rule set. A missing key is a valid
	// empty state, not an error.
	LoadRules(ctx context.Context) (rules.RuleSet, error)

	// SaveRules overwrites the entire persisted rule set.
	SaveRules(ctx context.Context, rs rules.RuleSet) error

	// GetOption reads a raw option value. found is false when the key has
	// never been written.
	GetOption(ctx context.Context, key string) (value []byte, found bool, err error)

	// SetOption writes a raw option value, replacing any previous one.
	SetOption(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
