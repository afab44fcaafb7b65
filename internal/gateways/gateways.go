// Package gateways models the store's payment gateway catalog. The real
// catalog lives in the host platform; this package gives the filter and the
// admin UI a typed view of it.
package gateways

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Gateway is one payment method offered at checkout.
type Gateway struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Catalog enumerates the payment gateways a shopper could be offered.
type Catalog interface {
	// Available returns the enabled gateways keyed by id.
	Available(ctx context.Context) (map[string]Gateway, error)
}

// StaticCatalog is an in-memory Catalog, loaded once at startup.
type StaticCatalog struct {
	mu       sync.RWMutex
	gateways []Gateway
}

// NewStaticCatalog creates a catalog over a fixed gateway list.
func NewStaticCatalog(gws []Gateway) *StaticCatalog {
	return &StaticCatalog{gateways: gws}
}

// LoadFile reads a YAML gateway list from path.
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gateway catalog: %w", err)
	}
	var doc struct {
		Gateways []Gateway `yaml:"gateways"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse gateway catalog: %w", err)
	}
	return NewStaticCatalog(doc.Gateways), nil
}

// Available returns the enabled gateways keyed by id.
func (c *StaticCatalog) Available(ctx context.Context) (map[string]Gateway, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Gateway, len(c.gateways))
	for _, gw := range c.gateways {
		if gw.Enabled {
			out[gw.ID] = gw
		}
	}
	return out, nil
}
