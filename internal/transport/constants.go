package transport

// Emission rates in kg CO2 per passenger-kilometer.
//
// Sources: IPCC Guidelines for National Greenhouse Gas Inventories,
// DEFRA greenhouse gas conversion factors 2024, Brazilian Ministry of
// Environment and EPE (Balanco Energetico Nacional). The electric car rate
// reflects the hydro-heavy Brazilian grid mix.
const (
	// RateBicycle has no direct emission.
	RateBicycle = 0.000

	// RateElectricCar assumes the Brazilian grid mix.
	RateElectricCar = 0.022

	// RateTrain covers electric trains and metro.
	RateTrain = 0.035

	// RateHybridCar combines electric and combustion engines.
	RateHybridCar = 0.051

	// RateBus is an urban diesel bus.
	RateBus = 0.075

	// RatePlane is a domestic economy-class flight.
	RatePlane = 0.123

	// RateMotorcycle is a 150-300cc gasoline motorcycle.
	RateMotorcycle = 0.130

	// RateGasolineCar is a compact 1.0-1.4L gasoline/flex car.
	RateGasolineCar = 0.148
)

// Transport mode identifiers.
const (
	IDBicycle     = "bicicleta"
	IDElectricCar = "carro_eletrico"
	IDTrain       = "trem"
	IDHybridCar   = "carro_hibrido"
	IDBus         = "onibus"
	IDPlane       = "aviao"
	IDMotorcycle  = "motocicleta"
	IDGasolineCar = "carro_gasolina"
)

// DataSourcesVersion identifies the revision of the rate table.
const DataSourcesVersion = "2026-01-06"

// defaultProfiles returns the canonical table in its fixed iteration order.
// The order is the tie-break order for comparisons.
func defaultProfiles() []Profile {
	return []Profile{
		{
			ID:             IDBicycle,
			Name:           "Bicycle",
			RateKgPerKm:    RateBicycle,
			Category:       CategoryNonMotorized,
			Sustainability: SustainabilityVeryHigh,
			Icon:           "🚴",
			Color:          "#4CAF50",
			Description:    "No direct CO2 emission",
		},
		{
			ID:             IDElectricCar,
			Name:           "Electric Car",
			RateKgPerKm:    RateElectricCar,
			Category:       CategoryPrivateVehicle,
			Sustainability: SustainabilityVeryHigh,
			Icon:           "🔋",
			Color:          "#8BC34A",
			Description:    "Brazilian grid mix (hydroelectric heavy)",
		},
		{
			ID:             IDTrain,
			Name:           "Train/Metro",
			RateKgPerKm:    RateTrain,
			Category:       CategoryPublicTransit,
			Sustainability: SustainabilityHigh,
			Icon:           "🚆",
			Color:          "#00BCD4",
			Description:    "Electric mass transit",
		},
		{
			ID:             IDHybridCar,
			Name:           "Hybrid Car",
			RateKgPerKm:    RateHybridCar,
			Category:       CategoryPrivateVehicle,
			Sustainability: SustainabilityHigh,
			Icon:           "🌱",
			Color:          "#03A9F4",
			Description:    "Electric motor plus combustion engine",
		},
		{
			ID:             IDBus,
			Name:           "Bus",
			RateKgPerKm:    RateBus,
			Category:       CategoryPublicTransit,
			Sustainability: SustainabilityMedium,
			Icon:           "🚌",
			Color:          "#2196F3",
			Description:    "Urban diesel bus",
		},
		{
			ID:             IDPlane,
			Name:           "Plane",
			RateKgPerKm:    RatePlane,
			Category:       CategoryAircraft,
			Sustainability: SustainabilityLow,
			Icon:           "✈️",
			Color:          "#FF9800",
			Description:    "Domestic flight, economy class",
		},
		{
			ID:             IDMotorcycle,
			Name:           "Motorcycle",
			RateKgPerKm:    RateMotorcycle,
			Category:       CategoryPrivateVehicle,
			Sustainability: SustainabilityMediumLow,
			Icon:           "🏍️",
			Color:          "#FF5722",
			Description:    "150-300cc motorcycle (gasoline)",
		},
		{
			ID:                 IDGasolineCar,
			Name:               "Gasoline Car",
			RateKgPerKm:        RateGasolineCar,
			Category:           CategoryPrivateVehicle,
			Sustainability:     SustainabilityVeryLow,
			Icon:               "🚗",
			Color:              "#F44336",
			Description:        "Compact 1.0-1.4L car (gasoline/flex)",
			CleanerAlternative: IDElectricCar,
		},
	}
}
