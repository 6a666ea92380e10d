package transport

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTable is returned when a profile set violates the table invariants.
var ErrInvalidTable = errors.New("invalid transport table")

// Table is an immutable, ordered set of transport profiles.
// Iteration order is fixed at construction and used as the tie-break order.
type Table struct {
	profiles []Profile
	index    map[string]int
}

// NewTable builds a table from the given profiles, preserving their order.
// It returns ErrInvalidTable when an ID is empty or duplicated, a category is
// unset, a rate is negative or non-finite, or a cleaner alternative points at
// an unknown mode.
func NewTable(profiles []Profile) (*Table, error) {
	t := &Table{
		profiles: make([]Profile, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	copy(t.profiles, profiles)

	for i, p := range t.profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: profile %d has an empty id", ErrInvalidTable, i)
		}
		if _, dup := t.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidTable, p.ID)
		}
		if p.Category == CategoryUnknown {
			return nil, fmt.Errorf("%w: profile %q has no category", ErrInvalidTable, p.ID)
		}
		if p.RateKgPerKm < 0 || math.IsNaN(p.RateKgPerKm) || math.IsInf(p.RateKgPerKm, 0) {
			return nil, fmt.Errorf("%w: rate for %q must be a finite value >= 0, got %v",
				ErrInvalidTable, p.ID, p.RateKgPerKm)
		}
		t.index[p.ID] = i
	}

	for _, p := range t.profiles {
		if p.CleanerAlternative == "" {
			continue
		}
		if _, ok := t.index[p.CleanerAlternative]; !ok {
			return nil, fmt.Errorf("%w: %q references unknown cleaner alternative %q",
				ErrInvalidTable, p.ID, p.CleanerAlternative)
		}
	}

	return t, nil
}

// Default returns the canonical eight-mode table.
func Default() *Table {
	t, err := NewTable(defaultProfiles())
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(err)
	}
	return t
}

// Lookup returns the profile with the given ID.
func (t *Table) Lookup(id string) (Profile, bool) {
	i, ok := t.index[id]
	if !ok {
		return Profile{}, false
	}
	return t.profiles[i], true
}

// Profiles returns a copy of all profiles in table order.
func (t *Table) Profiles() []Profile {
	out := make([]Profile, len(t.profiles))
	copy(out, t.profiles)
	return out
}

// IDs returns all mode IDs in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.profiles))
	for i, p := range t.profiles {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of profiles.
func (t *Table) Len() int {
	return len(t.profiles)
}

// Position returns the table index of the given ID, or -1.
func (t *Table) Position(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}
