package greenops

import (
	"fmt"
	"math"
)

// Equivalents computes every equivalent for co2Kg. It is total: negative or
// non-finite input yields a zero set. Use CalculateEquivalents to get an
// error for such values instead.
func Equivalents(co2Kg float64) EquivalentSet {
	set, err := CalculateEquivalents(co2Kg)
	if err != nil {
		return EquivalentSet{}
	}
	return set
}

// CalculateEquivalents computes every equivalent for co2Kg.
// It returns ErrNegativeValue for negative input and ErrCalculationOverflow
// for NaN or infinite input.
func CalculateEquivalents(co2Kg float64) (EquivalentSet, error) {
	if math.IsNaN(co2Kg) || math.IsInf(co2Kg, 0) {
		return EquivalentSet{}, ErrCalculationOverflow
	}
	if co2Kg < 0 {
		return EquivalentSet{}, ErrNegativeValue
	}

	return EquivalentSet{
		InputKg:           co2Kg,
		Trees:             int64(math.Ceil(co2Kg / TreeAbsorptionKgPerYear)),
		SmartphoneCharges: int64(math.Ceil(co2Kg / SmartphoneChargeKg)),
		EnergyKWh:         roundTo(co2Kg/GridKWhKg, 2),
		CarKm:             int64(math.Round(co2Kg / AverageCarKgPerKm)),
		Flights:           roundTo(co2Kg/ReferenceFlightKg, 2),
	}, nil
}

// TreesToOffset returns the number of trees needed to absorb co2Kg in one year.
func TreesToOffset(co2Kg float64) int64 {
	if co2Kg <= 0 || math.IsNaN(co2Kg) {
		return 0
	}
	return int64(math.Ceil(co2Kg / TreeAbsorptionKgPerYear))
}

// Results returns the set as display-ready entries in a fixed order.
func (s EquivalentSet) Results() []EquivalencyResult {
	return []EquivalencyResult{
		{
			Type:           EquivalencyTrees,
			Value:          float64(s.Trees),
			FormattedValue: formatEquivalencyValue(float64(s.Trees)),
			Label:          "trees to offset in a year",
		},
		{
			Type:           EquivalencySmartphoneCharges,
			Value:          float64(s.SmartphoneCharges),
			FormattedValue: formatEquivalencyValue(float64(s.SmartphoneCharges)),
			Label:          "smartphone charges",
		},
		{
			Type:           EquivalencyEnergyKWh,
			Value:          s.EnergyKWh,
			FormattedValue: FormatFloat(s.EnergyKWh, displayPrecision),
			Label:          "kWh of electricity",
		},
		{
			Type:           EquivalencyCarKm,
			Value:          float64(s.CarKm),
			FormattedValue: formatEquivalencyValue(float64(s.CarKm)),
			Label:          "km in an average car",
		},
		{
			Type:           EquivalencyFlights,
			Value:          s.Flights,
			FormattedValue: FormatFloat(s.Flights, displayPrecision),
			Label:          "São Paulo-Rio flights",
		},
	}
}

// DisplayText returns the prose form used by the CLI.
// Example: "Equivalent to 18,500 smartphone charges or 1,233 km in an average car".
func (s EquivalentSet) DisplayText() string {
	if s.InputKg == 0 {
		return "No emission to offset"
	}
	return fmt.Sprintf("Equivalent to %s smartphone charges or %s km in an average car",
		formatEquivalencyValue(float64(s.SmartphoneCharges)),
		formatEquivalencyValue(float64(s.CarKm)))
}

// formatEquivalencyValue rounds v to an integer with separators, switching to
// "~X.X million" notation at LargeNumberThreshold.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
