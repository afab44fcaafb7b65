// Package zones wraps the store's shipping-zone catalog and resolves a
// shopper's destination to the region code that rules are keyed on.
package zones

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Location pins a zone to a country and, optionally, a state within it.
type Location struct {
	Country string `json:"country" yaml:"country"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
}

// ParseLocationCode splits a combined "CC:SS" location code into a Location.
// A bare code is a country.
func ParseLocationCode(code string) Location {
	if i := strings.IndexByte(code, ':'); i >= 0 {
		return Location{Country: code[:i], State: code[i+1:]}
	}
	return Location{Country: code}
}

// Code returns the region code rules are stored under: the state when the
// location has one, otherwise the country. This matches the value the admin
// dropdown submits, which strips the country prefix from combined codes.
func (l Location) Code() string {
	if l.State != "" {
		return l.State
	}
	return l.Country
}

// Zone is one configured shipping zone.
type Zone struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Locations []Location `json:"locations" yaml:"locations"`
}

// Catalog enumerates the configured shipping zones.
type Catalog interface {
	Zones(ctx context.Context) ([]Zone, error)
}

// StaticCatalog is an in-memory Catalog, loaded once at startup.
type StaticCatalog struct {
	mu    sync.RWMutex
	zones []Zone
}

// NewStaticCatalog creates a catalog over a fixed zone list.
func NewStaticCatalog(zs []Zone) *StaticCatalog {
	return &StaticCatalog{zones: zs}
}

// LoadFile reads a YAML zone list from path.
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone catalog: %w", err)
	}
	var doc struct {
		Zones []Zone `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse zone catalog: %w", err)
	}
	return NewStaticCatalog(doc.Zones), nil
}

// Zones returns the configured zones.
func (c *StaticCatalog) Zones(ctx context.Context) ([]Zone, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.zones, nil
}
