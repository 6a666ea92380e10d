package greenops

import "math"

//nolint:gochecknoglobals // Static tier descriptions.
var impactTiers = map[ImpactLevel]Impact{
	ImpactLow: {
		Level:   ImpactLow,
		Label:   "Low impact",
		Score:   ScoreLow,
		Color:   "#4CAF50",
		Icon:    "😊",
		Message: "Excellent choice! This trip has a low environmental impact.",
	},
	ImpactModerate: {
		Level:   ImpactModerate,
		Label:   "Moderate impact",
		Score:   ScoreModerate,
		Color:   "#FF9800",
		Icon:    "🤔",
		Message: "Moderate impact. More sustainable alternatives are available.",
	},
	ImpactHigh: {
		Level:   ImpactHigh,
		Label:   "High impact",
		Score:   ScoreHigh,
		Color:   "#FF5722",
		Icon:    "⚠️",
		Message: "High environmental impact. Consider more sustainable alternatives.",
	},
	ImpactVeryHigh: {
		Level:   ImpactVeryHigh,
		Label:   "Very high impact",
		Score:   ScoreVeryHigh,
		Color:   "#F44336",
		Icon:    "🛑",
		Message: "Very high environmental impact! Evaluate alternatives urgently.",
	},
}

// ClassifyImpact assigns co2Kg to an impact tier. Bands are [0,5) low,
// [5,20) moderate, [20,100) high and [100,∞) very high. Negative or NaN
// input is treated as low.
func ClassifyImpact(co2Kg float64) Impact {
	return impactTiers[ImpactLevelFor(co2Kg)]
}

// ImpactLevelFor returns only the tier level for co2Kg.
func ImpactLevelFor(co2Kg float64) ImpactLevel {
	switch {
	case math.IsNaN(co2Kg) || co2Kg < LowImpactMaxKg:
		return ImpactLow
	case co2Kg < ModerateImpactMaxKg:
		return ImpactModerate
	case co2Kg < HighImpactMaxKg:
		return ImpactHigh
	default:
		return ImpactVeryHigh
	}
}

// ImpactFor returns the tier description for a level, and false for an
// unknown level.
func ImpactFor(level ImpactLevel) (Impact, bool) {
	impact, ok := impactTiers[level]
	return impact, ok
}
