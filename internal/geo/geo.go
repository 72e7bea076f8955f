// Package geo loads and serves the static geographic reference table: federal
// state -> city/district -> postal codes. The table is read once at startup
// and only read afterwards, so concurrent requests need no locking.
package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mietwert/backend/internal/domain"
)

// Location is the resolved state/city pair for a postal code.
type Location struct {
	State string `json:"state"`
	City  string `json:"city"`
}

// Reference is the immutable geographic lookup table.
type Reference struct {
	states   map[string]map[string][]string
	plzIndex map[string]Location
}

// Load reads the reference table from a JSON file. Failures wrap
// domain.ErrReferenceDataUnavailable so operators can tell missing reference
// data apart from model problems.
func Load(path string) (*Reference, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: reading %s: %v: %w", path, err, domain.ErrReferenceDataUnavailable)
	}

	var states map[string]map[string][]string
	if err := json.Unmarshal(raw, &states); err != nil {
		return nil, fmt.Errorf("geo: parsing %s: %v: %w", path, err, domain.ErrReferenceDataUnavailable)
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("geo: %s contains no states: %w", path, domain.ErrReferenceDataUnavailable)
	}
	return New(states), nil
}

// New builds a reference from an already-decoded table.
func New(states map[string]map[string][]string) *Reference {
	ref := &Reference{
		states:   states,
		plzIndex: make(map[string]Location),
	}
	for state, cities := range states {
		for city, plzs := range cities {
			for _, plz := range plzs {
				// First mapping wins for codes shared across districts.
				if _, exists := ref.plzIndex[plz]; !exists {
					ref.plzIndex[plz] = Location{State: state, City: city}
				}
			}
		}
	}
	return ref
}

// States exposes the raw table for serving to the form UI.
func (r *Reference) States() map[string]map[string][]string {
	return r.states
}

// LookupPLZ resolves a postal code to its state and city.
func (r *Reference) LookupPLZ(plz string) (Location, bool) {
	loc, ok := r.plzIndex[plz]
	return loc, ok
}

// Contains reports whether the state/city/postal-code triple appears in the
// reference table.
func (r *Reference) Contains(state, city, plz string) bool {
	cities, ok := r.states[state]
	if !ok {
		return false
	}
	plzs, ok := cities[city]
	if !ok {
		return false
	}
	for _, p := range plzs {
		if p == plz {
			return true
		}
	}
	return false
}
