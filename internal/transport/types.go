// Package transport defines the emission rate table: one profile per
// transport mode with its per-passenger-kilometer CO2 rate and display data.
package transport

import "fmt"

// Category groups transport modes by how their emission is attributed.
type Category int

const (
	// CategoryUnknown is the zero value. NewTable rejects it.
	CategoryUnknown Category = iota

	// CategoryPrivateVehicle covers cars and motorcycles. Emission is shared
	// among the occupants.
	CategoryPrivateVehicle

	// CategoryPublicTransit covers buses, trains and metro.
	CategoryPublicTransit

	// CategoryAircraft covers commercial flights.
	CategoryAircraft

	// CategoryNonMotorized covers bicycles and walking.
	CategoryNonMotorized
)

// String returns the lower-case identifier of the category.
func (c Category) String() string {
	switch c {
	case CategoryUnknown:
		return "unknown"
	case CategoryPrivateVehicle:
		return "private_vehicle"
	case CategoryPublicTransit:
		return "public_transit"
	case CategoryAircraft:
		return "aircraft"
	case CategoryNonMotorized:
		return "non_motorized"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	for _, candidate := range []Category{
		CategoryPrivateVehicle, CategoryPublicTransit, CategoryAircraft, CategoryNonMotorized,
	} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown transport category %q", text)
}

// SharesEmission reports whether the emission of a trip in this category is
// divided among its passengers.
func (c Category) SharesEmission() bool {
	return c == CategoryPrivateVehicle
}

// Sustainability is the qualitative tier label attached to a mode.
type Sustainability string

// Sustainability tiers, best first.
const (
	SustainabilityVeryHigh  Sustainability = "very_high"
	SustainabilityHigh      Sustainability = "high"
	SustainabilityMedium    Sustainability = "medium"
	SustainabilityMediumLow Sustainability = "medium_low"
	SustainabilityLow       Sustainability = "low"
	SustainabilityVeryLow   Sustainability = "very_low"
)

// Profile describes a single transport mode.
type Profile struct {
	ID             string         `json:"id"             yaml:"id"`
	Name           string         `json:"name"           yaml:"name"`
	RateKgPerKm    float64        `json:"rate_kg_per_km" yaml:"rate_kg_per_km"`
	Category       Category       `json:"category"       yaml:"category"`
	Sustainability Sustainability `json:"sustainability" yaml:"sustainability"`
	Icon           string         `json:"icon"           yaml:"icon"`
	Color          string         `json:"color"          yaml:"color"`
	Description    string         `json:"description"    yaml:"description"`

	// CleanerAlternative is the ID of a lower-emission variant of the same
	// vehicle, when one exists in the table.
	CleanerAlternative string `json:"cleaner_alternative,omitempty" yaml:"cleaner_alternative,omitempty"`
}

// IsPrivateVehicle reports whether the profile belongs to the private
// vehicle category.
func (p Profile) IsPrivateVehicle() bool {
	return p.Category == CategoryPrivateVehicle
}
