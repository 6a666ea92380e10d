package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/history"
)

func TestRenderResultSummary(t *testing.T) {
	calc := engine.NewCalculator(nil)
	r, err := calc.Calculate(context.Background(), engine.CalculationInput{
		Transport:   "carro_gasolina",
		DistanceKm:  430,
		Origin:      "sao_paulo",
		Destination: "rio_janeiro",
		RoundTrip:   true,
		Frequency:   2,
	})
	require.NoError(t, err)

	out := RenderResultSummary(r, 100)
	assert.Contains(t, out, "TRIP EMISSIONS")
	assert.Contains(t, out, "sao_paulo → rio_janeiro")
	assert.Contains(t, out, "Gasoline Car")
	assert.Contains(t, out, "254.56 kg")
	assert.Contains(t, out, "round trip, 2 trips")
	assert.Contains(t, out, "Very high impact")
	assert.Contains(t, out, "km in an average car")
	assert.Contains(t, out, "São Paulo-Rio flights")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "3 more")
}

func TestRenderResultSummary_Nil(t *testing.T) {
	assert.Contains(t, RenderResultSummary(nil, 80), "No result to display.")
}

func TestRenderEntryDetail(t *testing.T) {
	e := history.Entry{
		ID:              "01J",
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Origin:          "curitiba",
		Destination:     "florianopolis",
		DistanceKm:      300,
		TotalDistanceKm: 600,
		Transport:       "onibus",
		Passengers:      1,
		Frequency:       1,
		RoundTrip:       true,
		TotalEmissionKg: 45,
	}
	out := RenderEntryDetail(e, 0)
	assert.Contains(t, out, "curitiba → florianopolis")
	assert.Contains(t, out, "onibus", "falls back to the transport id")
	assert.Contains(t, out, "600.00 km")
	assert.Contains(t, out, "High impact")

	e.ImpactLevel = greenops.ImpactModerate
	assert.Contains(t, RenderEntryDetail(e, 0), "Moderate impact", "stored level wins")
}

func TestRenderImpact(t *testing.T) {
	out := RenderImpact(greenops.ClassifyImpact(5))
	assert.Contains(t, out, "Moderate impact")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "florian...", truncate("florianopolis", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "São...", truncate("São Paulo–Rio", 6))
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}

func TestDetectOutputMode_PlainOverrides(t *testing.T) {
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, true))
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, true, false))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, false))
}

func TestTerminalWidthFallback(t *testing.T) {
	// go test does not attach stdout to a terminal.
	assert.Equal(t, 80, TerminalWidth(80))
}
