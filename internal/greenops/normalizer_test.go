package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr error
	}{
		{name: "grams", value: 1000, unit: "g", wantKg: 1},
		{name: "milligrams", value: 500, unit: "mg", wantKg: 0.0005},
		{name: "kilograms identity", value: 150, unit: "kg", wantKg: 150},
		{name: "empty unit is kg", value: 3, unit: "", wantKg: 3},
		{name: "metric tons", value: 1, unit: "t", wantKg: 1000},
		{name: "pounds", value: 100, unit: "lb", wantKg: 45.3592},
		{name: "case insensitive suffix", value: 2, unit: "KgCO2e", wantKg: 2},
		{name: "negative", value: -1, unit: "kg", wantErr: ErrNegativeValue},
		{name: "unknown unit", value: 1, unit: "oz", wantErr: ErrInvalidUnit},
		{name: "nan", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "overflow", value: math.MaxFloat64, unit: "t", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-9)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		wantKg  float64
		wantErr error
	}{
		{"12", 12, nil},
		{"500g", 0.5, nil},
		{"1.5 t", 1500, nil},
		{" 7.4kg ", 7.4, nil},
		{"", 0, ErrInvalidQuantity},
		{"kg", 0, ErrInvalidQuantity},
		{"abc", 0, ErrInvalidQuantity},
		{"5 parsecs", 0, ErrInvalidUnit},
		{"-3kg", 0, ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-9)
		})
	}
}
