package zones

import (
	"context"
	"strings"
)

// Resolver finds the best matching zone for a shopper's destination.
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a Resolver over the given zone catalog.
func NewResolver(c Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve returns the region code of the zone matching the destination, or
// ok=false when the destination is empty or no configured zone covers it.
// A location naming both country and state beats a country-wide one.
func (r *Resolver) Resolve(ctx context.Context, country, state string) (code string, ok bool, err error) {
	country = strings.TrimSpace(country)
	state = strings.TrimSpace(state)
	if country == "" && state == "" {
		return "", false, nil
	}

	zs, err := r.catalog.Zones(ctx)
	if err != nil {
		return "", false, err
	}

	// First pass: exact country+state locations.
	if state != "" {
		for _, z := range zs {
			for _, loc := range z.Locations {
				if loc.State != "" &&
					strings.EqualFold(loc.Country, country) &&
					strings.EqualFold(loc.State, state) {
					return loc.Code(), true, nil
				}
			}
		}
	}

	// Second pass: country-wide locations.
	for _, z := range zs {
		for _, loc := range z.Locations {
			if loc.State == "" && strings.EqualFold(loc.Country, country) {
				return loc.Code(), true, nil
			}
		}
	}

	return "", false, nil
}
