package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/transport"
)

func kindsOf(recs []Recommendation) []RecommendationKind {
	kinds := make([]RecommendationKind, len(recs))
	for i, r := range recs {
		kinds[i] = r.Kind
	}
	return kinds
}

func calculate(t *testing.T, in CalculationInput) *CalculationResult {
	t.Helper()
	result, err := newTestCalculator().Calculate(context.Background(), in)
	require.NoError(t, err)
	return result
}

func TestRecommend_SharedGasolineCar(t *testing.T) {
	result := calculate(t, CalculationInput{Transport: transport.IDGasolineCar, DistanceKm: 100, Passengers: 2})

	recs := result.Recommendations
	require.Equal(t, []RecommendationKind{KindAlternative, KindAlternative, KindTechnology}, kindsOf(recs))

	assert.Equal(t, transport.IDBicycle, recs[0].Transport)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.InDelta(t, 7.4, recs[0].SavingsKg, 1e-9)
	assert.Equal(t, 100, recs[0].SavingsPercent)
	assert.Equal(t, "Using Bicycle you would save 7.40 kg of CO₂ (100%)", recs[0].Message)

	assert.Equal(t, transport.IDElectricCar, recs[1].Transport)
	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.InDelta(t, 6.3, recs[1].SavingsKg, 1e-9)
	assert.Equal(t, 85, recs[1].SavingsPercent)

	assert.Equal(t, transport.IDElectricCar, recs[2].Transport)
	assert.Equal(t, PriorityMedium, recs[2].Priority)
	assert.Equal(t, 85, recs[2].SavingsPercent)
}

func TestRecommend_AllRulesFire(t *testing.T) {
	result := calculate(t, CalculationInput{
		Transport:  transport.IDGasolineCar,
		DistanceKm: 430,
		RoundTrip:  true,
		Frequency:  2,
	})

	recs := result.Recommendations
	require.Equal(t, []RecommendationKind{
		KindAlternative,
		KindAlternative,
		KindProjection,
		KindCarpooling,
		KindCompensation,
		KindTechnology,
	}, kindsOf(recs))

	assert.InDelta(t, 1527.36, recs[2].ProjectedKg, 1e-6)
	assert.Equal(t, PriorityMedium, recs[2].Priority)

	assert.InDelta(t, 127.28, recs[3].ProjectedKg, 1e-6)
	assert.InDelta(t, 127.28, recs[3].SavingsKg, 1e-6)
	assert.Equal(t, 50, recs[3].SavingsPercent)
	assert.Equal(t, PriorityHigh, recs[3].Priority)

	assert.Equal(t, int64(13), recs[4].Trees)
	assert.Equal(t, PriorityLow, recs[4].Priority)
	assert.Equal(t, "Consider planting 13 tree(s) or joining a carbon offset program", recs[4].Message)

	assert.InDelta(t, 216.72, recs[5].SavingsKg, 1e-6)
	assert.Equal(t, 85, recs[5].SavingsPercent)
}

func TestRecommend_BestModeHasNothingToSay(t *testing.T) {
	result := calculate(t, CalculationInput{Transport: transport.IDBicycle, DistanceKm: 25})

	assert.Equal(t, 0.0, result.TotalEmissionKg)
	assert.Empty(t, result.Recommendations)
	assert.NotNil(t, result.Recommendations)
}

func TestRecommend_BusThreePassengers(t *testing.T) {
	result := calculate(t, CalculationInput{Transport: transport.IDBus, DistanceKm: 100, Passengers: 3})

	recs := result.Recommendations
	require.Equal(t, []RecommendationKind{KindAlternative, KindAlternative}, kindsOf(recs))
	assert.Equal(t, transport.IDBicycle, recs[0].Transport)
	assert.Equal(t, transport.IDElectricCar, recs[1].Transport)
	assert.Equal(t, 90, recs[1].SavingsPercent)
}

func TestRecommend_MotorcycleCarpools(t *testing.T) {
	result := calculate(t, CalculationInput{Transport: transport.IDMotorcycle, DistanceKm: 10})

	kinds := kindsOf(result.Recommendations)
	assert.Contains(t, kinds, KindCarpooling)
	assert.NotContains(t, kinds, KindTechnology)
}

func TestRecommend_ZeroTotal(t *testing.T) {
	calc := newTestCalculator()
	result := &CalculationResult{
		Transport:       transport.IDElectricCar,
		Passengers:      1,
		Frequency:       3,
		ExactEmissionKg: 0,
	}

	recs := calc.Recommend(result)
	require.Equal(t, []RecommendationKind{KindProjection, KindCarpooling}, kindsOf(recs))
	for _, r := range recs {
		assert.Zero(t, r.SavingsPercent)
	}
	assert.Nil(t, calc.Recommend(nil))
}

func TestSavingsPercent(t *testing.T) {
	assert.Equal(t, 0, savingsPercent(5, 0))
	assert.Equal(t, 50, savingsPercent(1, 2))
	assert.Equal(t, 33, savingsPercent(1, 3))
	assert.Equal(t, 67, savingsPercent(2, 3))
}
