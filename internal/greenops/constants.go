package greenops

// Equivalency factors, in kg CO2 per unit. To calculate an equivalency,
// divide the carbon value by the factor:
//
//	equivalency = kg_CO2 / factor
const (
	// TreeAbsorptionKgPerYear is the CO2 absorbed by one adult tree in a year.
	TreeAbsorptionKgPerYear = 21.0

	// SmartphoneChargeKg is the CO2 of one full smartphone charge.
	SmartphoneChargeKg = 0.008

	// GridKWhKg is the CO2 of one kWh on the Brazilian grid mix (EPE 2024).
	GridKWhKg = 0.0817

	// AverageCarKgPerKm is the CO2 of one kilometer in an average car.
	AverageCarKgPerKm = 0.12

	// ReferenceFlightKg is the CO2 of one São Paulo to Rio de Janeiro flight
	// per passenger.
	ReferenceFlightKg = 90.0
)

// Impact band upper bounds in kg CO2. Bands are closed below and open above.
const (
	LowImpactMaxKg      = 5.0
	ModerateImpactMaxKg = 20.0
	HighImpactMaxKg     = 100.0
)

// Impact scores, decreasing with severity.
const (
	ScoreLow      = 10
	ScoreModerate = 6
	ScoreHigh     = 3
	ScoreVeryHigh = 1
)

// Unit conversion constants for normalizing carbon values to kilograms.
const (
	// MilligramsToKg converts milligrams to kilograms.
	MilligramsToKg = 0.000001

	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonsToKg converts metric tons to kilograms.
	TonsToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000

	// displayPrecision is the number of decimals used for kg, t and km display.
	displayPrecision = 2
)
