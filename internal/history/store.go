// Package history keeps a bounded, newest-first log of calculations and
// persists it through a kvstore.Store.
package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecoroute/internal/config"
	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/kvstore"
	"github.com/rshade/ecoroute/internal/logging"
)

// Store is the calculation history. Mutations are serialized; every
// mutation is written through to the key-value store.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	key      string
	capacity int
	entries  []Entry

	metrics *engine.Metrics
	now     func() time.Time
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics records evictions and storage failures on m.
func WithMetrics(m *engine.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides the timestamp source used for imported records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the entry ID source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty store persisting under key. Call Load to read what
// is already persisted. An empty key selects the default key.
func New(kv kvstore.Store, key string, capacity int, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("history: key-value store is required")
	}
	if capacity < 1 || capacity > config.MaxHistoryCapacity {
		return nil, fmt.Errorf("history: capacity %d must be between 1 and %d", capacity, config.MaxHistoryCapacity)
	}
	if key == "" {
		key = config.DefaultHistoryKey
	}

	s := &Store{
		kv:       kv,
		key:      key,
		capacity: capacity,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load replaces the in-memory entries with the persisted ones. A missing
// key yields an empty history. Entries beyond the capacity are dropped.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.FromContext(ctx)

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.metrics.ObserveStorageFailure("load")
		return fmt.Errorf("loading history: %w", err)
	}
	if !ok {
		s.entries = nil
		return nil
	}

	entries, err := decodeEnvelope(raw)
	if err != nil {
		return fmt.Errorf("loading history %q: %w", s.key, err)
	}
	if len(entries) > s.capacity {
		log.Debug().
			Ctx(ctx).
			Str("component", "history").
			Int("loaded", len(entries)).
			Int("capacity", s.capacity).
			Msg("persisted history exceeds capacity, truncating")
		entries = entries[:s.capacity]
	}
	s.entries = entries

	log.Debug().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "load").
		Str("key", s.key).
		Int("entries", len(entries)).
		Msg("history loaded")
	return nil
}

// Append records a calculation at the head of the history and evicts from
// the tail past capacity. On a storage failure the entry is still kept in
// memory and returned together with an error wrapping ErrStorageUnavailable.
func (s *Store) Append(ctx context.Context, r *engine.CalculationResult) (Entry, error) {
	if r == nil {
		return Entry{}, errors.New("history: nil calculation result")
	}

	entry := EntryFromResult(r)
	entry.ID = s.newID()
	entry.Timestamp = r.Timestamp
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{entry}, s.entries...)
	s.evictLocked()

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "append").
		Str("entry_id", entry.ID).
		Str("transport", entry.Transport).
		Float64("total_emission_kg", entry.TotalEmissionKg).
		Int("entries", len(s.entries)).
		Msg("history entry appended")

	return entry, s.persistLocked(ctx, "append")
}

// List returns a copy of the entries, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Get returns the entry at index.
func (s *Store) Get(index int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, &InvalidIndexError{Index: index, Len: len(s.entries)}
	}
	return s.entries[index], nil
}

// Remove deletes the entry at index in newest-first order. It returns false
// without error when index is out of range.
func (s *Store) Remove(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return false, nil
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return true, s.persistLocked(ctx, "remove")
}

// Clear empties the history and deletes the persisted key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.metrics.ObserveStorageFailure("clear")
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Search returns the entries matching every set criterion, newest first.
func (s *Store) Search(c Criteria) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	for _, e := range s.entries {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Stats aggregates the history. Distances are one-way trip distances. Ties
// for the most used transport go to the one seen first, newest first.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Count: len(s.entries), Distribution: make(map[string]int)}
	if st.Count == 0 {
		return st
	}

	var order []string
	for _, e := range s.entries {
		st.TotalEmissionKg += e.TotalEmissionKg
		st.TotalDistanceKm += e.DistanceKm
		if st.Distribution[e.Transport] == 0 {
			order = append(order, e.Transport)
		}
		st.Distribution[e.Transport]++
	}
	st.AverageEmissionKg = st.TotalEmissionKg / float64(st.Count)

	best := 0
	for _, id := range order {
		if n := st.Distribution[id]; n > best {
			best = n
			st.MostUsedTransport = id
		}
	}
	return st
}

// Compare reports the emission difference of entry b relative to entry a.
// The percentage is 0 when a has no emission. On equal emissions b is
// reported as the more efficient entry.
func (s *Store) Compare(a, b int) (Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range []int{a, b} {
		if idx < 0 || idx >= len(s.entries) {
			return Comparison{}, &InvalidIndexError{Index: idx, Len: len(s.entries)}
		}
	}

	ea, eb := s.entries[a], s.entries[b]
	cmp := Comparison{
		IndexA:        a,
		IndexB:        b,
		A:             ea,
		B:             eb,
		DifferenceKg:  eb.TotalEmissionKg - ea.TotalEmissionKg,
		MoreEfficient: b,
	}
	if ea.TotalEmissionKg != 0 {
		cmp.DifferencePercent = cmp.DifferenceKg / ea.TotalEmissionKg * 100
	}
	if cmp.DifferenceKg > 0 {
		cmp.MoreEfficient = a
	}
	return cmp, nil
}

// ImportBatch validates every record and, only if all are valid, places
// them at the head of the history in their given order. The merged list is
// capped at capacity. It returns the number of records imported.
func (s *Store) ImportBatch(ctx context.Context, records []Entry) (int, error) {
	for i, rec := range records {
		if field := invalidField(rec); field != "" {
			return 0, &InvalidImportDataError{Index: i, Field: field}
		}
	}

	imported := make([]Entry, len(records))
	for i, rec := range records {
		imported[i] = s.normalizeImported(rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(imported, s.entries...)
	s.evictLocked()

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "import").
		Int("imported", len(imported)).
		Int("entries", len(s.entries)).
		Msg("history records imported")

	return len(imported), s.persistLocked(ctx, "import")
}

// Export renders the history as a JSON array of flat records.
func (s *Store) Export() ([]byte, error) {
	return EncodeExport(s.List())
}

// invalidField names the first required field rec is missing, or "".
func invalidField(rec Entry) string {
	switch {
	case rec.Origin == "":
		return "origin"
	case rec.Destination == "":
		return "destination"
	case rec.DistanceKm <= 0 || math.IsNaN(rec.DistanceKm) || math.IsInf(rec.DistanceKm, 0):
		return "distance"
	case rec.Transport == "":
		return "transport"
	case rec.TotalEmissionKg < 0 || math.IsNaN(rec.TotalEmissionKg) || math.IsInf(rec.TotalEmissionKg, 0):
		return "totalEmission"
	default:
		return ""
	}
}

// normalizeImported assigns a fresh ID and fills the derived fields a
// hand-written record may omit. Emission and distance values are kept as
// given.
func (s *Store) normalizeImported(rec Entry) Entry {
	rec.ID = s.newID()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now().UTC()
	}
	if rec.Passengers < 1 {
		rec.Passengers = engine.DefaultPassengers
	}
	if rec.Frequency < 1 {
		rec.Frequency = engine.DefaultFrequency
	}
	if rec.TotalDistanceKm == 0 {
		rec.TotalDistanceKm = engine.CalculationInput{
			DistanceKm: rec.DistanceKm,
			Frequency:  rec.Frequency,
			RoundTrip:  rec.RoundTrip,
		}.TotalDistanceKm()
	}
	if rec.ImpactLevel == "" {
		rec.ImpactLevel = greenops.ClassifyImpact(rec.TotalEmissionKg).Level
	}
	return rec
}

func (s *Store) evictLocked() {
	if evicted := len(s.entries) - s.capacity; evicted > 0 {
		s.entries = s.entries[:s.capacity]
		s.metrics.ObserveEvictions(evicted)
	}
}

func (s *Store) persistLocked(ctx context.Context, operation string) error {
	value, err := encodeEnvelope(s.entries)
	if err != nil {
		return err
	}
	if err = s.kv.Set(ctx, s.key, value); err != nil {
		s.metrics.ObserveStorageFailure(operation)
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "history").
			Str("operation", operation).
			Str("key", s.key).
			Err(err).
			Msg("history not persisted, keeping entries in memory")
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
