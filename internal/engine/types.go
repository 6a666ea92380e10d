package engine

import (
	"time"

	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/transport"
)

// Default values applied to zero-valued input fields.
const (
	DefaultPassengers = 1
	DefaultFrequency  = 1
)

// CalculationInput describes one trip.
type CalculationInput struct {
	Transport   string  `json:"transport"             yaml:"transport"`
	DistanceKm  float64 `json:"distance"              yaml:"distance"`
	Passengers  int     `json:"passengers"            yaml:"passengers"`
	Frequency   int     `json:"frequency"             yaml:"frequency"`
	RoundTrip   bool    `json:"roundTrip"             yaml:"round_trip"`
	Origin      string  `json:"origin,omitempty"      yaml:"origin,omitempty"`
	Destination string  `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// TotalDistanceKm is the one-way distance multiplied by the round-trip
// factor and the frequency.
func (in CalculationInput) TotalDistanceKm() float64 {
	multiplier := 1.0
	if in.RoundTrip {
		multiplier = 2
	}
	return in.DistanceKm * multiplier * float64(in.Frequency)
}

// ComparisonEntry is the emission of one transport mode for the same trip.
type ComparisonEntry struct {
	Transport       string                   `json:"transport"`
	Name            string                   `json:"name"`
	Icon            string                   `json:"icon"`
	Color           string                   `json:"color"`
	Category        transport.Category       `json:"category"`
	Sustainability  transport.Sustainability `json:"sustainability"`
	EmissionKg      float64                  `json:"co2"`
	ExactEmissionKg float64                  `json:"-"`
}

// RankedEntry is a comparison entry with its podium position.
type RankedEntry struct {
	ComparisonEntry

	Position int    `json:"position"`
	Medal    string `json:"medal"`
}

// Priority orders recommendations for display.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RecommendationKind identifies the rule that produced a recommendation.
type RecommendationKind string

// Recommendation kinds, in rule order.
const (
	KindAlternative  RecommendationKind = "alternative"
	KindProjection   RecommendationKind = "projection"
	KindCarpooling   RecommendationKind = "carpooling"
	KindCompensation RecommendationKind = "compensation"
	KindTechnology   RecommendationKind = "technology"
)

// Recommendation is one actionable suggestion attached to a result.
type Recommendation struct {
	Kind     RecommendationKind `json:"type"`
	Icon     string             `json:"icon"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Priority Priority           `json:"priority"`

	// Transport is the suggested mode for alternative and technology
	// recommendations.
	Transport string `json:"transport,omitempty"`

	// SavingsKg is the reduction versus the current total, when the rule
	// computes one.
	SavingsKg      float64 `json:"savings_kg,omitempty"`
	SavingsPercent int     `json:"savings_percent,omitempty"`

	// ProjectedKg carries the annualised total for projection recommendations
	// and the per-capita emission for carpooling.
	ProjectedKg float64 `json:"projected_kg,omitempty"`

	// Trees is the offset tree count for compensation recommendations.
	Trees int64 `json:"trees,omitempty"`
}

// CalculationResult is the complete output of one calculation.
type CalculationResult struct {
	ID        string    `json:"calculationId"`
	Timestamp time.Time `json:"timestamp"`

	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DistanceKm    float64 `json:"distance"`
	Transport     string  `json:"transport"`
	TransportName string  `json:"transportName"`
	Passengers    int     `json:"passengers"`
	Frequency     int     `json:"frequency"`
	RoundTrip     bool    `json:"roundTrip"`

	TotalDistanceKm float64 `json:"totalDistance"`
	TotalEmissionKg float64 `json:"totalEmission"`
	ExactEmissionKg float64 `json:"-"`
	EmissionRate    float64 `json:"emissionRate"`
	EmissionPerKm   float64 `json:"emissionPerKm"`

	Comparison      []ComparisonEntry      `json:"comparison"`
	Equivalents     greenops.EquivalentSet `json:"equivalents"`
	Impact          greenops.Impact        `json:"impact"`
	Recommendations []Recommendation       `json:"recommendations"`
}

// Input reconstructs the normalised input the result was computed from.
func (r *CalculationResult) Input() CalculationInput {
	return CalculationInput{
		Transport:   r.Transport,
		DistanceKm:  r.DistanceKm,
		Passengers:  r.Passengers,
		Frequency:   r.Frequency,
		RoundTrip:   r.RoundTrip,
		Origin:      r.Origin,
		Destination: r.Destination,
	}
}

// BatchItem is the outcome of one trip in a batch calculation. Exactly one
// of Result and Err is set.
type BatchItem struct {
	Index  int                `json:"index"`
	Input  CalculationInput   `json:"input"`
	Result *CalculationResult `json:"result,omitempty"`
	Err    error              `json:"-"`
}
