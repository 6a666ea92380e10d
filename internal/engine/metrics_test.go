package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/transport"
)

func TestMetrics_Calculations(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	calc := newTestCalculator(WithMetrics(metrics))
	ctx := context.Background()

	_, err := calc.Calculate(ctx, CalculationInput{Transport: transport.IDBus, DistanceKm: 100, Passengers: 3})
	require.NoError(t, err)
	_, err = calc.Calculate(ctx, CalculationInput{Transport: transport.IDBus, DistanceKm: 10})
	require.NoError(t, err)
	_, err = calc.Calculate(ctx, CalculationInput{Transport: "zeppelin", DistanceKm: 10})
	require.Error(t, err)
	_, err = calc.Calculate(ctx, CalculationInput{Transport: transport.IDBus})
	require.Error(t, err)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.calculations.WithLabelValues(transport.IDBus, "moderate")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.calculations.WithLabelValues(transport.IDBus, "low")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.errors.WithLabelValues(ReasonInvalidTransport)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.errors.WithLabelValues(ReasonInvalidDistance)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.emission))
}

func TestMetrics_HistoryCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	metrics.ObserveEvictions(3)
	metrics.ObserveEvictions(0)
	metrics.ObserveStorageFailure("save")
	metrics.ObserveStorageFailure("save")

	assert.InDelta(t, 3.0, testutil.ToFloat64(metrics.evictions), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.storageFailures.WithLabelValues("save")), 0)
}

func TestMetrics_NilSafe(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.ObserveEvictions(1)
		metrics.ObserveStorageFailure("load")
		metrics.observeError(errors.New("boom"))
		metrics.observeCalculation(&CalculationResult{})
	})
}

func TestRegisterRouteCacheStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	hits, misses := uint64(4), uint64(2)
	RegisterRouteCacheStats(reg, func() (uint64, uint64) { return hits, misses })

	expected := `
# HELP ecoroute_route_cache_hits_total Great-circle distance lookups served from cache
# TYPE ecoroute_route_cache_hits_total counter
ecoroute_route_cache_hits_total 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ecoroute_route_cache_hits_total"))

	misses = 7
	expected = `
# HELP ecoroute_route_cache_misses_total Great-circle distance lookups computed
# TYPE ecoroute_route_cache_misses_total counter
ecoroute_route_cache_misses_total 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ecoroute_route_cache_misses_total"))
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidTransportError{Transport: "x"}, ReasonInvalidTransport},
		{fmt.Errorf("wrapped: %w", &InvalidDistanceError{}), ReasonInvalidDistance},
		{&InvalidInputError{Field: "frequency"}, ReasonInvalidInput},
		{errors.New("other"), ReasonOther},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorReason(tt.err))
		})
	}
}
