// Package routes holds the seeded location and route tables and resolves
// trip distances between named locations.
package routes

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rshade/ecoroute/internal/geo"
)

// ErrInvalidRouteTable is returned when locations or routes violate the table invariants.
var ErrInvalidRouteTable = errors.New("invalid route table")

// ErrNoLocationInRange is returned by Nearest when no location lies within the radius.
var ErrNoLocationInRange = errors.New("no location within search radius")

// Location is a named place with coordinates.
type Location struct {
	ID             string `json:"id"   yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	geo.Coordinate `yaml:",inline"`
}

// RouteEntry is a known trip distance between two locations. Lookups are
// order independent.
type RouteEntry struct {
	Origin      string  `json:"origin"      yaml:"origin"`
	Destination string  `json:"destination" yaml:"destination"`
	DistanceKm  float64 `json:"distance_km" yaml:"distance_km"`
}

// Destination is a reachable location and its table distance from a given origin.
type Destination struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

// Stats summarizes the route table coverage.
type Stats struct {
	TotalRoutes          int     `json:"total_routes"`
	TotalLocations       int     `json:"total_locations"`
	PossibleCombinations int     `json:"possible_combinations"`
	CoveragePercent      int     `json:"coverage_percent"`
	MinDistanceKm        float64 `json:"min_distance_km"`
	MaxDistanceKm        float64 `json:"max_distance_km"`
	AvgDistanceKm        float64 `json:"avg_distance_km"`
}

// Table is an immutable set of locations and known route distances.
type Table struct {
	locations []Location
	locIndex  map[string]int
	routes    []RouteEntry
	distances map[routeKey]float64
}

// routeKey is directional; lookups try both orders.
type routeKey struct {
	origin      string
	destination string
}

// NewTable validates and indexes the given locations and routes.
func NewTable(locations []Location, routes []RouteEntry) (*Table, error) {
	t := &Table{
		locations: make([]Location, len(locations)),
		locIndex:  make(map[string]int, len(locations)),
		routes:    make([]RouteEntry, len(routes)),
		distances: make(map[routeKey]float64, len(routes)),
	}
	copy(t.locations, locations)
	copy(t.routes, routes)

	for i, loc := range t.locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("%w: location %d has an empty id", ErrInvalidRouteTable, i)
		}
		if _, dup := t.locIndex[loc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidRouteTable, loc.ID)
		}
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: location %q: %w", ErrInvalidRouteTable, loc.ID, err)
		}
		t.locIndex[loc.ID] = i
	}

	for _, r := range t.routes {
		if err := t.validateRoute(r); err != nil {
			return nil, err
		}
		t.distances[routeKey{r.Origin, r.Destination}] = r.DistanceKm
	}

	return t, nil
}

func (t *Table) validateRoute(r RouteEntry) error {
	name := r.Origin + "-" + r.Destination
	if r.Origin == r.Destination {
		return fmt.Errorf("%w: route %q connects a location to itself", ErrInvalidRouteTable, name)
	}
	for _, id := range []string{r.Origin, r.Destination} {
		if _, ok := t.locIndex[id]; !ok {
			return fmt.Errorf("%w: route %q references unknown location %q", ErrInvalidRouteTable, name, id)
		}
	}
	if r.DistanceKm <= 0 || math.IsNaN(r.DistanceKm) || math.IsInf(r.DistanceKm, 0) {
		return fmt.Errorf("%w: route %q must have a positive distance, got %v",
			ErrInvalidRouteTable, name, r.DistanceKm)
	}
	if _, ok := t.distances[routeKey{r.Origin, r.Destination}]; ok {
		return fmt.Errorf("%w: duplicate route %q", ErrInvalidRouteTable, name)
	}
	if _, ok := t.distances[routeKey{r.Destination, r.Origin}]; ok {
		return fmt.Errorf("%w: duplicate route %q (reverse already defined)", ErrInvalidRouteTable, name)
	}
	return nil
}

// Default returns the table seeded with DefaultLocations and DefaultRoutes.
func Default() *Table {
	t, err := NewTable(DefaultLocations(), DefaultRoutes())
	if err != nil {
		panic(err)
	}
	return t
}

// Location returns the location with the given ID.
func (t *Table) Location(id string) (Location, bool) {
	i, ok := t.locIndex[id]
	if !ok {
		return Location{}, false
	}
	return t.locations[i], true
}

// Locations returns all locations sorted by name.
func (t *Table) Locations() []Location {
	out := make([]Location, len(t.locations))
	copy(out, t.locations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Routes returns a copy of the route entries in definition order.
func (t *Table) Routes() []RouteEntry {
	out := make([]RouteEntry, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the table distance between two locations, trying
// origin-destination first and destination-origin second.
func (t *Table) Lookup(originID, destinationID string) (float64, bool) {
	if d, ok := t.distances[routeKey{originID, destinationID}]; ok {
		return d, true
	}
	if d, ok := t.distances[routeKey{destinationID, originID}]; ok {
		return d, true
	}
	return 0, false
}

// RoutesFrom lists every table route touching the given location, nearest first.
func (t *Table) RoutesFrom(id string) []Destination {
	var out []Destination
	for _, r := range t.routes {
		var other string
		switch id {
		case r.Origin:
			other = r.Destination
		case r.Destination:
			other = r.Origin
		default:
			continue
		}
		loc, _ := t.Location(other)
		out = append(out, Destination{ID: other, Name: loc.Name, DistanceKm: r.DistanceKm})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// Stats reports coverage and distance extremes of the route table.
func (t *Table) Stats() Stats {
	n := len(t.locations)
	s := Stats{
		TotalRoutes:          len(t.routes),
		TotalLocations:       n,
		PossibleCombinations: n * (n - 1) / 2,
	}
	if s.PossibleCombinations > 0 {
		s.CoveragePercent = int(math.Round(float64(s.TotalRoutes) / float64(s.PossibleCombinations) * 100))
	}
	if len(t.routes) == 0 {
		return s
	}

	s.MinDistanceKm = math.Inf(1)
	s.MaxDistanceKm = math.Inf(-1)
	var sum float64
	for _, r := range t.routes {
		s.MinDistanceKm = math.Min(s.MinDistanceKm, r.DistanceKm)
		s.MaxDistanceKm = math.Max(s.MaxDistanceKm, r.DistanceKm)
		sum += r.DistanceKm
	}
	s.AvgDistanceKm = math.Round(sum / float64(len(t.routes)))
	return s
}

// Nearest returns the location closest to c within radiusKm, together with
// its unrounded distance. A non-positive radius means DefaultSearchRadiusKM.
func (t *Table) Nearest(c geo.Coordinate, radiusKm float64) (Location, float64, error) {
	if err := c.Validate(); err != nil {
		return Location{}, 0, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKM
	}

	best := -1
	bestDist := math.Inf(1)
	for i, loc := range t.locations {
		d := geo.Distance(c, loc.Coordinate)
		if d <= radiusKm && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Location{}, 0, fmt.Errorf("%w: %.0f km of (%.4f, %.4f)", ErrNoLocationInRange, radiusKm, c.Lat, c.Lng)
	}
	return t.locations[best], bestDist, nil
}

// Extend returns a new table holding t's locations and routes followed by
// the given ones. The result is validated as a whole, so an extra route may
// reference a seeded location but may not redefine a seeded route.
func (t *Table) Extend(locations []Location, routes []RouteEntry) (*Table, error) {
	if len(locations) == 0 && len(routes) == 0 {
		return t, nil
	}
	allLocations := append(append(make([]Location, 0, len(t.locations)+len(locations)), t.locations...), locations...)
	allRoutes := append(append(make([]RouteEntry, 0, len(t.routes)+len(routes)), t.routes...), routes...)
	return NewTable(allLocations, allRoutes)
}
