package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopkit/paytoggle/internal/rules"
)

// MemoryStore is an in-memory implementation of the Store interface, a map
// guarded by an RWMutex. Suitable for development, testing, or a
// single-instance deployment that tolerates losing rules on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	options map[string][]byte
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		options: make(map[string][]byte),
	}
}

// GetOption reads a raw option value.
func (m *MemoryStore) GetOption(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, found := m.options[key]
	return value, found, nil
}

// SetOption writes a raw option value, replacing any previous one.
func (m *MemoryStore) SetOption(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.options[key] = value
	return nil
}

// LoadRules returns the persisted rule set, or an empty set when nothing has
// been saved yet.
func (m *MemoryStore) LoadRules(ctx context.Context) (rules.RuleSet, error) {
	value, found, err := m.GetOption(ctx, SettingsKey)
	if err != nil || !found {
		return rules.RuleSet{}, err
	}
	return decodeRules(value)
}

// SaveRules overwrites the persisted rule set.
func (m *MemoryStore) SaveRules(ctx context.Context, rs rules.RuleSet) error {
	value, err := encodeRules(rs)
	if err != nil {
		return err
	}
	return m.SetOption(ctx, SettingsKey, value)
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}

func encodeRules(rs rules.RuleSet) ([]byte, error) {
	if rs == nil {
		rs = rules.RuleSet{}
	}
	return json.Marshal(rs)
}

func decodeRules(value []byte) (rules.RuleSet, error) {
	var rs rules.RuleSet
	if len(value) == 0 {
		return rules.RuleSet{}, nil
	}
	if err := json.Unmarshal(value, &rs); err != nil {
		return nil, err
	}
	if rs == nil {
		rs = rules.RuleSet{}
	}
	return rs, nil
}
