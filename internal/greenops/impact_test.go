package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyImpact(t *testing.T) {
	tests := []struct {
		co2Kg     float64
		wantLevel ImpactLevel
		wantScore int
	}{
		{0, ImpactLow, 10},
		{4.999, ImpactLow, 10},
		{5.0, ImpactModerate, 6},
		{19.999, ImpactModerate, 6},
		{20.0, ImpactHigh, 3},
		{99.99, ImpactHigh, 3},
		{100.0, ImpactVeryHigh, 1},
		{1e6, ImpactVeryHigh, 1},
		{-1, ImpactLow, 10},
		{math.NaN(), ImpactLow, 10},
	}

	for _, tt := range tests {
		got := ClassifyImpact(tt.co2Kg)
		assert.Equal(t, tt.wantLevel, got.Level, "co2=%v", tt.co2Kg)
		assert.Equal(t, tt.wantScore, got.Score, "co2=%v", tt.co2Kg)
		assert.NotEmpty(t, got.Message)
	}
}

func TestImpactScores_DecreaseWithSeverity(t *testing.T) {
	levels := []ImpactLevel{ImpactLow, ImpactModerate, ImpactHigh, ImpactVeryHigh}
	for i := 1; i < len(levels); i++ {
		prev, _ := ImpactFor(levels[i-1])
		cur, _ := ImpactFor(levels[i])
		assert.Greater(t, prev.Score, cur.Score)
	}

	_, ok := ImpactFor("catastrophic")
	assert.False(t, ok)
}
