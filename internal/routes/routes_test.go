package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/geo"
)

func newDefaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(Default(), 0)
	require.NoError(t, err)
	return r
}

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Len(t, table.Locations(), 15)
	assert.Len(t, table.Routes(), 105)
}

func TestResolve_TableLookup(t *testing.T) {
	r := newDefaultResolver(t)

	tests := []struct {
		origin      string
		destination string
		want        float64
	}{
		{"sao_paulo", "rio_janeiro", 430},
		{"rio_janeiro", "sao_paulo", 430},
		{"sao_paulo", "santos", 72},
		{"florianopolis", "santos", 633},
		{"manaus", "porto_alegre", 4730},
	}

	for _, tt := range tests {
		t.Run(tt.origin+"->"+tt.destination, func(t *testing.T) {
			got, source, ok := r.ResolveWithSource(tt.origin, tt.destination)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, SourceTable, source)
		})
	}
}

func TestResolve_Symmetric(t *testing.T) {
	r := newDefaultResolver(t)
	for _, a := range r.Table().Locations() {
		for _, b := range r.Table().Locations() {
			ab, okAB := r.Resolve(a.ID, b.ID)
			ba, okBA := r.Resolve(b.ID, a.ID)
			assert.Equal(t, okAB, okBA)
			assert.InDelta(t, ab, ba, 1e-9, "%s/%s", a.ID, b.ID)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := newDefaultResolver(t)

	_, ok := r.Resolve("sao_paulo", "sao_paulo")
	assert.False(t, ok, "same origin and destination")

	_, ok = r.Resolve("sao_paulo", "atlantis")
	assert.False(t, ok, "unknown destination")

	_, ok = r.Resolve("atlantis", "sao_paulo")
	assert.False(t, ok, "unknown origin")
}

func TestResolve_GreatCircleFallback(t *testing.T) {
	locations := append(DefaultLocations(), Location{
		ID:         "niteroi",
		Name:       "Niterói",
		Coordinate: geo.Coordinate{Lat: -22.8832, Lng: -43.1034},
	})
	table, err := NewTable(locations, DefaultRoutes())
	require.NoError(t, err)

	r, err := NewResolver(table, 8)
	require.NoError(t, err)

	d, source, ok := r.ResolveWithSource("rio_janeiro", "niteroi")
	require.True(t, ok)
	assert.Equal(t, SourceGreatCircle, source)
	assert.Equal(t, float64(int(d)), d, "fallback is rounded to whole km")
	assert.InDelta(t, 8, d, 1)

	again, ok := r.Resolve("niteroi", "rio_janeiro")
	require.True(t, ok)
	assert.InDelta(t, d, again, 1e-9)

	hits, misses := r.CacheStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestNewTable_Invalid(t *testing.T) {
	sp := Location{ID: "sp", Name: "SP", Coordinate: geo.Coordinate{Lat: -23.5, Lng: -46.6}}
	rj := Location{ID: "rj", Name: "RJ", Coordinate: geo.Coordinate{Lat: -22.9, Lng: -43.1}}

	tests := []struct {
		name      string
		locations []Location
		routes    []RouteEntry
	}{
		{"duplicate location", []Location{sp, sp}, nil},
		{"empty id", []Location{{Name: "x"}}, nil},
		{"bad coordinate", []Location{{ID: "x", Coordinate: geo.Coordinate{Lat: 120}}}, nil},
		{"self route", []Location{sp}, []RouteEntry{{Origin: "sp", Destination: "sp", DistanceKm: 1}}},
		{"unknown endpoint", []Location{sp}, []RouteEntry{{Origin: "sp", Destination: "rj", DistanceKm: 1}}},
		{"zero distance", []Location{sp, rj}, []RouteEntry{{Origin: "sp", Destination: "rj"}}},
		{"reverse duplicate", []Location{sp, rj}, []RouteEntry{
			{Origin: "sp", Destination: "rj", DistanceKm: 430},
			{Origin: "rj", Destination: "sp", DistanceKm: 431},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.locations, tt.routes)
			assert.ErrorIs(t, err, ErrInvalidRouteTable)
		})
	}
}

func TestNewTable_HyphenatedIDsDoNotCollide(t *testing.T) {
	loc := func(id string, lat float64) Location {
		return Location{ID: id, Name: id, Coordinate: geo.Coordinate{Lat: lat, Lng: -46.6}}
	}
	table, err := NewTable(
		[]Location{loc("a-b", -23.0), loc("c", -23.5), loc("a", -24.0), loc("b-c", -24.5)},
		[]RouteEntry{
			{Origin: "a-b", Destination: "c", DistanceKm: 10},
			{Origin: "a", Destination: "b-c", DistanceKm: 20},
		},
	)
	require.NoError(t, err)

	d, ok := table.Lookup("a-b", "c")
	require.True(t, ok)
	assert.InDelta(t, 10.0, d, 1e-9)

	d, ok = table.Lookup("b-c", "a")
	require.True(t, ok)
	assert.InDelta(t, 20.0, d, 1e-9)

	_, ok = table.Lookup("a", "c")
	assert.False(t, ok)

	r, err := NewResolver(table, 4)
	require.NoError(t, err)
	_, src, ok := r.ResolveWithSource("a-b", "b-c")
	require.True(t, ok)
	assert.Equal(t, SourceGreatCircle, src)
	d, src, ok = r.ResolveWithSource("a", "b-c")
	require.True(t, ok)
	assert.Equal(t, SourceTable, src)
	assert.InDelta(t, 20.0, d, 1e-9)
}

func TestRoutesFrom(t *testing.T) {
	table := Default()
	dests := table.RoutesFrom("sao_paulo")
	require.Len(t, dests, 14)

	assert.Equal(t, "santos", dests[0].ID)
	assert.InDelta(t, 72, dests[0].DistanceKm, 1e-9)
	assert.Equal(t, "campinas", dests[1].ID)
	for i := 1; i < len(dests); i++ {
		assert.LessOrEqual(t, dests[i-1].DistanceKm, dests[i].DistanceKm)
	}

	assert.Empty(t, table.RoutesFrom("atlantis"))
}

func TestStats(t *testing.T) {
	s := Default().Stats()
	assert.Equal(t, 105, s.TotalRoutes)
	assert.Equal(t, 15, s.TotalLocations)
	assert.Equal(t, 105, s.PossibleCombinations)
	assert.Equal(t, 100, s.CoveragePercent)
	assert.InDelta(t, 72, s.MinDistanceKm, 1e-9)
	assert.InDelta(t, 4730, s.MaxDistanceKm, 1e-9)
	assert.Positive(t, s.AvgDistanceKm)

	empty, err := NewTable(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty.Stats())
}

func TestNearest(t *testing.T) {
	table := Default()

	loc, dist, err := table.Nearest(geo.Coordinate{Lat: -23.55, Lng: -46.63}, 0)
	require.NoError(t, err)
	assert.Equal(t, "sao_paulo", loc.ID)
	assert.Less(t, dist, 1.0)

	_, _, err = table.Nearest(geo.Coordinate{Lat: 0, Lng: 0}, 50)
	assert.ErrorIs(t, err, ErrNoLocationInRange)

	_, _, err = table.Nearest(geo.Coordinate{Lat: 95, Lng: 0}, 50)
	assert.Error(t, err)
}

func TestLocations_SortedByName(t *testing.T) {
	locs := Default().Locations()
	for i := 1; i < len(locs); i++ {
		assert.LessOrEqual(t, locs[i-1].Name, locs[i].Name)
	}
}

func TestExtend(t *testing.T) {
	base := Default()

	same, err := base.Extend(nil, nil)
	require.NoError(t, err)
	assert.Same(t, base, same)

	extended, err := base.Extend(
		[]Location{{ID: "petropolis", Name: "Petrópolis", Coordinate: geo.Coordinate{Lat: -22.5050, Lng: -43.1786}}},
		[]RouteEntry{{Origin: "rio_janeiro", Destination: "petropolis", DistanceKm: 68}},
	)
	require.NoError(t, err)
	assert.Len(t, extended.Locations(), 16)
	assert.Len(t, base.Locations(), 15)

	d, ok := extended.Lookup("petropolis", "rio_janeiro")
	require.True(t, ok)
	assert.Equal(t, 68.0, d)

	_, err = base.Extend(nil, []RouteEntry{{Origin: "rio_janeiro", Destination: "sao_paulo", DistanceKm: 400}})
	assert.ErrorIs(t, err, ErrInvalidRouteTable)
}
