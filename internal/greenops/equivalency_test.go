package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEquivalents(t *testing.T) {
	tests := []struct {
		name       string
		co2Kg      float64
		wantTrees  int64
		wantPhones int64
		wantKWh    float64
		wantCarKm  int64
		wantFlight float64
	}{
		{
			name:       "zero",
			co2Kg:      0,
			wantTrees:  0,
			wantPhones: 0,
		},
		{
			name:       "gasoline car 100 km shared by two",
			co2Kg:      7.4,
			wantTrees:  1,    // ceil(7.4 / 21)
			wantPhones: 925,  // ceil(7.4 / 0.008)
			wantKWh:    90.58, // 7.4 / 0.0817
			wantCarKm:  62,   // round(7.4 / 0.12)
			wantFlight: 0.08, // 7.4 / 90
		},
		{
			name:       "exact tree multiple",
			co2Kg:      42,
			wantTrees:  2,
			wantPhones: 5250,
			wantKWh:    514.08,
			wantCarKm:  350,
			wantFlight: 0.47,
		},
		{
			name:       "fraction of a tree still needs one",
			co2Kg:      0.001,
			wantTrees:  1,
			wantPhones: 1,
			wantKWh:    0.01,
			wantCarKm:  0,
			wantFlight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateEquivalents(tt.co2Kg)
			require.NoError(t, err)
			assert.InDelta(t, tt.co2Kg, got.InputKg, 1e-12)
			assert.Equal(t, tt.wantTrees, got.Trees)
			assert.Equal(t, tt.wantPhones, got.SmartphoneCharges)
			assert.InDelta(t, tt.wantKWh, got.EnergyKWh, 1e-9)
			assert.Equal(t, tt.wantCarKm, got.CarKm)
			assert.InDelta(t, tt.wantFlight, got.Flights, 1e-9)
		})
	}
}

func TestCalculateEquivalents_Errors(t *testing.T) {
	_, err := CalculateEquivalents(-1)
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = CalculateEquivalents(math.NaN())
	assert.ErrorIs(t, err, ErrCalculationOverflow)

	_, err = CalculateEquivalents(math.Inf(1))
	assert.ErrorIs(t, err, ErrCalculationOverflow)

	assert.Equal(t, EquivalentSet{}, Equivalents(-5))
}

func TestTreesToOffset(t *testing.T) {
	assert.Equal(t, int64(0), TreesToOffset(0))
	assert.Equal(t, int64(1), TreesToOffset(10.5))
	assert.Equal(t, int64(1), TreesToOffset(21))
	assert.Equal(t, int64(2), TreesToOffset(21.01))
	assert.Equal(t, int64(0), TreesToOffset(-3))
}

func TestEquivalentSet_Results(t *testing.T) {
	set := Equivalents(150)
	results := set.Results()
	require.Len(t, results, 5)

	assert.Equal(t, EquivalencyTrees, results[0].Type)
	assert.Equal(t, "8", results[0].FormattedValue)
	assert.Equal(t, EquivalencySmartphoneCharges, results[1].Type)
	assert.Equal(t, "18,750", results[1].FormattedValue)
	assert.Equal(t, EquivalencyCarKm, results[3].Type)
	assert.Equal(t, "1,250", results[3].FormattedValue)
	for _, r := range results {
		assert.NotEmpty(t, r.Label)
	}

	assert.Contains(t, set.DisplayText(), "18,750 smartphone charges")
	assert.Equal(t, "No emission to offset", Equivalents(0).DisplayText())
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "Trees", EquivalencyTrees.String())
	assert.Equal(t, "Flights", EquivalencyFlights.String())
	assert.Equal(t, "EquivalencyType(99)", EquivalencyType(99).String())
}
