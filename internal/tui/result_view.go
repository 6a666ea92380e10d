package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/history"
)

// maxBoxRecommendations caps the recommendations listed in the summary box.
const maxBoxRecommendations = 3

// ImpactStyle colors text with the impact band color.
func ImpactStyle(impact greenops.Impact) lipgloss.Style {
	if impact.Color == "" {
		return ValueStyle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(impact.Color))
}

// RenderImpact renders the impact label with its icon in the band color.
func RenderImpact(impact greenops.Impact) string {
	return ImpactStyle(impact).Render(strings.TrimSpace(impact.Icon + " " + impact.Label))
}

// RenderResultSummary renders a boxed summary of a calculation. width is the
// total box width including borders; non-positive means the default.
func RenderResultSummary(r *engine.CalculationResult, width int) string {
	if r == nil {
		return InfoStyle.Render("No result to display.")
	}
	if width <= 0 {
		width = defaultBoxWidth
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("TRIP EMISSIONS"))
	b.WriteString("\n")

	if r.Origin != "" || r.Destination != "" {
		writeLine(&b, "Route:", fmt.Sprintf("%s → %s", r.Origin, r.Destination))
	}
	writeLine(&b, "Transport:", r.TransportName)
	writeLine(&b, "Distance:", tripDistance(r))
	writeLine(&b, "Emission:", greenops.FormatEmission(r.TotalEmissionKg)+
		SubtleStyle.Render(fmt.Sprintf("  (%.4f kg/km)", r.EmissionPerKm)))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", "Impact:")))
	b.WriteString(RenderImpact(r.Impact))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(r.Equivalents.DisplayText()))
	if r.Equivalents.InputKg > 0 {
		for _, e := range r.Equivalents.Results() {
			b.WriteString("\n")
			b.WriteString(ValueStyle.Render(fmt.Sprintf("%12s", e.FormattedValue)))
			b.WriteString(LabelStyle.Render(" " + e.Label))
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n\n")
		b.WriteString(HeaderStyle.Render("RECOMMENDATIONS"))
		for i, rec := range r.Recommendations {
			if i == maxBoxRecommendations {
				b.WriteString("\n")
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("… %d more", len(r.Recommendations)-i)))
				break
			}
			b.WriteString("\n")
			b.WriteString(rec.Icon + " ")
			b.WriteString(ValueStyle.Render(rec.Title))
			b.WriteString(LabelStyle.Render(": " + rec.Message))
		}
	}

	return BoxStyle.Width(width - borderPadding).Render(b.String())
}

// RenderEntryDetail renders one history entry as a box.
func RenderEntryDetail(e history.Entry, width int) string {
	if width <= 0 {
		width = defaultBoxWidth
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("HISTORY ENTRY"))
	b.WriteString("\n")
	writeLine(&b, "ID:", e.ID)
	writeLine(&b, "When:", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	writeLine(&b, "Route:", fmt.Sprintf("%s → %s", e.Origin, e.Destination))
	name := e.TransportName
	if name == "" {
		name = e.Transport
	}
	writeLine(&b, "Transport:", name)
	writeLine(&b, "Distance:", greenops.FormatDistance(e.DistanceKm))
	if e.TotalDistanceKm > 0 && e.TotalDistanceKm != e.DistanceKm {
		writeLine(&b, "Total:", greenops.FormatDistance(e.TotalDistanceKm))
	}
	writeLine(&b, "Passengers:", fmt.Sprintf("%d", e.Passengers))
	writeLine(&b, "Frequency:", fmt.Sprintf("%d", e.Frequency))
	writeLine(&b, "Round trip:", fmt.Sprintf("%t", e.RoundTrip))
	writeLine(&b, "Emission:", greenops.FormatEmission(e.TotalEmissionKg))
	impact, ok := greenops.ImpactFor(e.ImpactLevel)
	if !ok {
		impact = greenops.ClassifyImpact(e.TotalEmissionKg)
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", "Impact:")))
	b.WriteString(RenderImpact(impact))

	return BoxStyle.Width(width - borderPadding).Render(b.String())
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", label)))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}

func tripDistance(r *engine.CalculationResult) string {
	s := greenops.FormatDistance(r.TotalDistanceKm)
	var notes []string
	if r.RoundTrip {
		notes = append(notes, "round trip")
	}
	if r.Frequency > 1 {
		notes = append(notes, fmt.Sprintf("%d trips", r.Frequency))
	}
	if r.Passengers > 1 {
		notes = append(notes, fmt.Sprintf("%d passengers", r.Passengers))
	}
	if len(notes) > 0 {
		s += SubtleStyle.Render(" (" + strings.Join(notes, ", ") + ")")
	}
	return s
}
