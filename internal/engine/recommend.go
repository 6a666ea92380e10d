package engine

import (
	"fmt"
	"math"

	"github.com/rshade/ecoroute/internal/greenops"
)

// Periods per year used by the projection rule.
const periodsPerYear = 12

// CompensationThresholdKg is the total above which an offset is suggested.
const CompensationThresholdKg = 10.0

// Recommend derives the recommendations for a result. Rules run in a fixed
// order and each may fire independently: cleaner alternatives, annual
// projection, carpooling, compensation and cleaner technology. Deltas use the
// unrounded emissions.
func (c *Calculator) Recommend(r *CalculationResult) []Recommendation {
	if r == nil {
		return nil
	}

	total := r.ExactEmissionKg
	recs := make([]Recommendation, 0, 4)

	better := betterAlternatives(r)
	if len(better) > 0 {
		best := better[0]
		savings := total - best.ExactEmissionKg
		pct := savingsPercent(savings, total)
		recs = append(recs, Recommendation{
			Kind:           KindAlternative,
			Icon:           "💡",
			Title:          "More Sustainable Alternative",
			Message:        fmt.Sprintf("Using %s you would save %.2f kg of CO₂ (%d%%)", best.Name, savings, pct),
			Priority:       PriorityHigh,
			Transport:      best.Transport,
			SavingsKg:      savings,
			SavingsPercent: pct,
		})
	}
	if len(better) > 1 {
		second := better[1]
		savings := total - second.ExactEmissionKg
		pct := savingsPercent(savings, total)
		recs = append(recs, Recommendation{
			Kind:  KindAlternative,
			Icon:  "🌱",
			Title: "Second Sustainable Option",
			Message: fmt.Sprintf("%s is also a good option: saves %.2f kg of CO₂ (%d%%)",
				second.Name, savings, pct),
			Priority:       PriorityMedium,
			Transport:      second.Transport,
			SavingsKg:      savings,
			SavingsPercent: pct,
		})
	}

	if r.Frequency > 1 {
		yearly := total / float64(r.Frequency) * periodsPerYear
		recs = append(recs, Recommendation{
			Kind:  KindProjection,
			Icon:  "📅",
			Title: "Annual Projection",
			Message: fmt.Sprintf("At this frequency you will emit %.2f kg of CO₂ per year (%.2f kg per month)",
				yearly, total),
			Priority:    PriorityMedium,
			ProjectedKg: yearly,
		})
	}

	profile, known := c.table.Lookup(r.Transport)

	if known && profile.IsPrivateVehicle() && r.Passengers == 1 {
		perCapita := total / 2
		savings := total - perCapita
		recs = append(recs, Recommendation{
			Kind:  KindCarpooling,
			Icon:  "🚗",
			Title: "Share the Ride",
			Message: fmt.Sprintf("With one more passenger the per-capita emission drops to %.2f kg (saving %.2f kg)",
				perCapita, savings),
			Priority:       PriorityHigh,
			SavingsKg:      savings,
			SavingsPercent: savingsPercent(savings, total),
			ProjectedKg:    perCapita,
		})
	}

	if total > CompensationThresholdKg {
		trees := greenops.TreesToOffset(total)
		recs = append(recs, Recommendation{
			Kind:     KindCompensation,
			Icon:     "🌳",
			Title:    "Offset Your Emissions",
			Message:  fmt.Sprintf("Consider planting %d tree(s) or joining a carbon offset program", trees),
			Priority: PriorityLow,
			Trees:    trees,
		})
	}

	if known && profile.CleanerAlternative != "" {
		if alt, ok := findEntry(r.Comparison, profile.CleanerAlternative); ok {
			savings := total - alt.ExactEmissionKg
			pct := savingsPercent(savings, total)
			recs = append(recs, Recommendation{
				Kind:  KindTechnology,
				Icon:  "⚡",
				Title: "Consider a Cleaner Vehicle",
				Message: fmt.Sprintf("Switching to the %s would reduce your emissions by %.2f kg (%d%%)",
					alt.Name, savings, pct),
				Priority:       PriorityMedium,
				Transport:      alt.Transport,
				SavingsKg:      savings,
				SavingsPercent: pct,
			})
		}
	}

	return recs
}

// betterAlternatives returns the comparison entries that strictly beat the
// current mode, best first.
func betterAlternatives(r *CalculationResult) []ComparisonEntry {
	var better []ComparisonEntry
	for _, e := range r.Comparison {
		if e.Transport != r.Transport && e.ExactEmissionKg < r.ExactEmissionKg {
			better = append(better, e)
		}
	}
	return better
}

func findEntry(entries []ComparisonEntry, id string) (ComparisonEntry, bool) {
	for _, e := range entries {
		if e.Transport == id {
			return e, true
		}
	}
	return ComparisonEntry{}, false
}

// savingsPercent is round(100 × savings / total), or 0 when total is 0.
func savingsPercent(savings, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * savings / total))
}
