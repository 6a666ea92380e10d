// Package greenops converts trip emissions into relatable equivalents and
// classifies their environmental impact.
//
// It turns abstract carbon values (kg CO2) into quantities like "trees
// needed for a year" or "smartphone charges", and assigns each total to one
// of four impact tiers.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyTrees is the number of trees needed to absorb the CO2 in a year.
	EquivalencyTrees EquivalencyType = iota

	// EquivalencySmartphoneCharges is the number of full smartphone charges.
	EquivalencySmartphoneCharges

	// EquivalencyEnergyKWh is kWh of grid electricity.
	EquivalencyEnergyKWh

	// EquivalencyCarKm is kilometers driven in an average car.
	EquivalencyCarKm

	// EquivalencyFlights is the number of short reference flights.
	EquivalencyFlights
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTrees:
		return "Trees"
	case EquivalencySmartphoneCharges:
		return "SmartphoneCharges"
	case EquivalencyEnergyKWh:
		return "EnergyKWh"
	case EquivalencyCarKm:
		return "CarKm"
	case EquivalencyFlights:
		return "Flights"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency for display.
type EquivalencyResult struct {
	// Type identifies the equivalency category.
	Type EquivalencyType `json:"type"`

	// Value is the equivalency value after its rounding rule.
	Value float64 `json:"value"`

	// FormattedValue is the display-ready string with separators/scaling.
	FormattedValue string `json:"formatted_value"`

	// Label is the descriptive phrase (e.g., "smartphone charges").
	Label string `json:"label"`
}

// EquivalentSet holds every equivalent for one emission total. Trees and
// smartphone charges round up; energy and flights keep two decimals; car
// kilometers round to the nearest integer.
type EquivalentSet struct {
	InputKg           float64 `json:"input_kg"`
	Trees             int64   `json:"trees"`
	SmartphoneCharges int64   `json:"smartphone_charges"`
	EnergyKWh         float64 `json:"energy_kwh"`
	CarKm             int64   `json:"car_km"`
	Flights           float64 `json:"flights"`
}

// ImpactLevel is a discrete severity tier.
type ImpactLevel string

// Impact tiers, least severe first.
const (
	ImpactLow      ImpactLevel = "low"
	ImpactModerate ImpactLevel = "moderate"
	ImpactHigh     ImpactLevel = "high"
	ImpactVeryHigh ImpactLevel = "very_high"
)

// Impact is the classification of an emission total.
type Impact struct {
	Level   ImpactLevel `json:"level"`
	Label   string      `json:"label"`
	Score   int         `json:"score"`
	Color   string      `json:"color"`
	Icon    string      `json:"icon"`
	Message string      `json:"message"`
}
