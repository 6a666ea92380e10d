package greenops

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// getUnitFactor returns the conversion factor to kilograms for unit and
// whether the unit is recognized. Matching is case-insensitive.
func getUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "mg", "mgco2", "mgco2e":
		return MilligramsToKg, true
	case "g", "gco2", "gco2e":
		return GramsToKg, true
	case "", "kg", "kgco2", "kgco2e":
		return KgToKg, true
	case "t", "tco2", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon quantity in unit to kilograms.
// Recognized units are mg, g, kg, t and lb with optional CO2/CO2e suffix.
// It returns ErrNegativeValue for negative values, ErrInvalidUnit for an
// unknown unit, and ErrCalculationOverflow for Inf/NaN input or overflow.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// ParseQuantity parses strings like "500g", "1.5 t" or "12" (kg) into kilograms.
func ParseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidQuantity
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r)
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = strings.TrimSpace(s[:split]), s[split:]
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return NormalizeToKg(value, unit)
}
