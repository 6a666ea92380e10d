package routes

import (
	"fmt"
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rshade/ecoroute/internal/geo"
)

// DefaultCacheSize is the number of great-circle fallbacks kept in memory.
const DefaultCacheSize = 256

// Source identifies where a resolved distance came from.
type Source string

const (
	// SourceTable means the distance is a seeded route entry.
	SourceTable Source = "table"
	// SourceGreatCircle means the distance is a rounded haversine estimate.
	SourceGreatCircle Source = "great_circle"
)

// Resolver resolves distances between named locations. Table entries win;
// otherwise the great-circle distance rounded to whole kilometers is used
// and memoized. Safe for concurrent use.
type Resolver struct {
	table  *Table
	cache  *lru.Cache[routeKey, float64]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewResolver creates a resolver over table with an LRU of cacheSize
// fallback results. A non-positive size means DefaultCacheSize.
func NewResolver(table *Table, cacheSize int) (*Resolver, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidRouteTable)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[routeKey, float64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating distance cache: %w", err)
	}
	return &Resolver{table: table, cache: cache}, nil
}

// Table returns the underlying route table.
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve returns the distance in kilometers between two location IDs.
// It returns false when the IDs are equal or either location is unknown.
func (r *Resolver) Resolve(originID, destinationID string) (float64, bool) {
	d, _, ok := r.ResolveWithSource(originID, destinationID)
	return d, ok
}

// ResolveWithSource is Resolve that also reports how the distance was found.
func (r *Resolver) ResolveWithSource(originID, destinationID string) (float64, Source, bool) {
	if originID == destinationID {
		return 0, "", false
	}

	if d, ok := r.table.Lookup(originID, destinationID); ok {
		return d, SourceTable, true
	}

	origin, ok := r.table.Location(originID)
	if !ok {
		return 0, "", false
	}
	destination, ok := r.table.Location(destinationID)
	if !ok {
		return 0, "", false
	}

	key := pairKey(originID, destinationID)
	if d, ok := r.cache.Get(key); ok {
		r.hits.Add(1)
		return d, SourceGreatCircle, true
	}
	r.misses.Add(1)

	d := math.Round(geo.Distance(origin.Coordinate, destination.Coordinate))
	r.cache.Add(key, d)
	return d, SourceGreatCircle, true
}

// CacheStats returns the fallback cache hit and miss counts.
func (r *Resolver) CacheStats() (hits, misses uint64) {
	return r.hits.Load(), r.misses.Load()
}

// pairKey is order independent so A→B and B→A share a cache slot.
func pairKey(a, b string) routeKey {
	if a > b {
		a, b = b, a
	}
	return routeKey{origin: a, destination: b}
}
