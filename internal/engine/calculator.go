// Package engine computes trip emissions, compares every transport mode for
// the same trip and derives recommendations from the result.
package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/logging"
	"github.com/rshade/ecoroute/internal/transport"
)

// Output precision of emission figures.
const (
	emissionDecimals = 3
	perKmDecimals    = 4
)

// Calculator computes emissions against an immutable rate table. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	table      *transport.Table
	now        func() time.Time
	newID      func() string
	metrics    *Metrics
	batchLimit int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the calculation ID source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithMetrics records calculations on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

// WithBatchConcurrency bounds the number of concurrent calculations in
// CalculateBatch. Values below 1 are ignored.
func WithBatchConcurrency(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.batchLimit = n
		}
	}
}

// NewCalculator returns a calculator over table, or over the default table
// when table is nil.
func NewCalculator(table *transport.Table, opts ...Option) *Calculator {
	if table == nil {
		table = transport.Default()
	}
	c := &Calculator{
		table:      table,
		now:        time.Now,
		newID:      func() string { return ulid.Make().String() },
		batchLimit: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the rate table used by the calculator.
func (c *Calculator) Table() *transport.Table {
	return c.table
}

// Calculate computes the emission of one trip, its comparison against every
// mode, equivalents, impact tier and recommendations. Invalid input produces
// no result.
func (c *Calculator) Calculate(ctx context.Context, in CalculationInput) (*CalculationResult, error) {
	log := logging.FromContext(ctx)

	in, profile, err := c.prepare(in)
	if err != nil {
		c.metrics.observeError(err)
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "calculate").
			Str("transport", in.Transport).
			Err(err).
			Msg("calculation input rejected")
		return nil, err
	}

	totalDistance := in.TotalDistanceKm()
	exact := emissionFor(profile, totalDistance, in.Passengers)

	result := &CalculationResult{
		ID:              c.newID(),
		Timestamp:       c.now().UTC(),
		Origin:          in.Origin,
		Destination:     in.Destination,
		DistanceKm:      in.DistanceKm,
		Transport:       profile.ID,
		TransportName:   profile.Name,
		Passengers:      in.Passengers,
		Frequency:       in.Frequency,
		RoundTrip:       in.RoundTrip,
		TotalDistanceKm: totalDistance,
		TotalEmissionKg: roundTo(exact, emissionDecimals),
		ExactEmissionKg: exact,
		EmissionRate:    profile.RateKgPerKm,
		EmissionPerKm:   roundTo(exact/totalDistance, perKmDecimals),
		Comparison:      c.compare(in),
		Equivalents:     greenops.Equivalents(exact),
		Impact:          greenops.ClassifyImpact(exact),
	}
	result.Recommendations = c.Recommend(result)

	c.metrics.observeCalculation(result)
	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "calculate").
		Str("transport", result.Transport).
		Float64("total_distance_km", result.TotalDistanceKm).
		Float64("total_emission_kg", result.TotalEmissionKg).
		Str("impact", string(result.Impact.Level)).
		Int("recommendations", len(result.Recommendations)).
		Msg("calculation complete")

	return result, nil
}

// Compare returns the emission of every mode for the trip, ascending. The
// transport field of in is not required.
func (c *Calculator) Compare(in CalculationInput) ([]ComparisonEntry, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	return c.compare(in), nil
}

// Ranking returns the one-way, single-trip comparison with podium positions.
func (c *Calculator) Ranking(distanceKm float64, passengers int) ([]RankedEntry, error) {
	comparison, err := c.Compare(CalculationInput{DistanceKm: distanceKm, Passengers: passengers})
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEntry, len(comparison))
	for i, entry := range comparison {
		ranked[i] = RankedEntry{
			ComparisonEntry: entry,
			Position:        i + 1,
			Medal:           medal(i + 1),
		}
	}
	return ranked, nil
}

// Validate checks every field of in and reports all failures at once as a
// *ValidationError. It returns nil for input Calculate would accept.
func (c *Calculator) Validate(in CalculationInput) error {
	var problems []FieldError

	switch {
	case in.Transport == "":
		problems = append(problems, FieldError{Field: "transport", Message: "transport not specified"})
	default:
		if _, ok := c.table.Lookup(in.Transport); !ok {
			problems = append(problems, FieldError{
				Field:   "transport",
				Message: fmt.Sprintf("unknown transport mode %q", in.Transport),
			})
		}
	}
	if !validDistance(in.DistanceKm) {
		problems = append(problems, FieldError{Field: "distance", Message: "distance must be a finite number greater than 0"})
	}
	if in.Passengers < 0 {
		problems = append(problems, FieldError{Field: "passengers", Message: "passenger count must be at least 1"})
	}
	if in.Frequency < 0 {
		problems = append(problems, FieldError{Field: "frequency", Message: "frequency must be at least 1"})
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Errors: problems}
}

func (c *Calculator) prepare(in CalculationInput) (CalculationInput, transport.Profile, error) {
	profile, ok := c.table.Lookup(in.Transport)
	if !ok {
		return in, transport.Profile{}, &InvalidTransportError{Transport: in.Transport}
	}
	in, err := normalize(in)
	if err != nil {
		return in, transport.Profile{}, err
	}
	return in, profile, nil
}

// compare expects normalised input.
func (c *Calculator) compare(in CalculationInput) []ComparisonEntry {
	totalDistance := in.TotalDistanceKm()
	profiles := c.table.Profiles()

	entries := make([]ComparisonEntry, len(profiles))
	for i, p := range profiles {
		exact := emissionFor(p, totalDistance, in.Passengers)
		entries[i] = ComparisonEntry{
			Transport:       p.ID,
			Name:            p.Name,
			Icon:            p.Icon,
			Color:           p.Color,
			Category:        p.Category,
			Sustainability:  p.Sustainability,
			EmissionKg:      roundTo(exact, emissionDecimals),
			ExactEmissionKg: exact,
		}
	}

	// Ties keep table order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ExactEmissionKg < entries[j].ExactEmissionKg
	})
	return entries
}

// normalize applies the passenger and frequency defaults and validates the
// numeric fields.
func normalize(in CalculationInput) (CalculationInput, error) {
	if !validDistance(in.DistanceKm) {
		return in, &InvalidDistanceError{Distance: in.DistanceKm}
	}

	switch {
	case in.Passengers == 0:
		in.Passengers = DefaultPassengers
	case in.Passengers < 0:
		return in, &InvalidInputError{Field: "passengers", Value: in.Passengers}
	}
	switch {
	case in.Frequency == 0:
		in.Frequency = DefaultFrequency
	case in.Frequency < 0:
		return in, &InvalidInputError{Field: "frequency", Value: in.Frequency}
	}
	return in, nil
}

// emissionFor is rate × distance, divided among passengers for modes whose
// emission is shared.
func emissionFor(p transport.Profile, totalDistanceKm float64, passengers int) float64 {
	emission := p.RateKgPerKm * totalDistanceKm
	if p.Category.SharesEmission() && passengers > 1 {
		emission /= float64(passengers)
	}
	return emission
}

func validDistance(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

func medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%dº", position)
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
