package engine

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error reasons recorded by ecoroute_calculation_errors_total.
const (
	ReasonInvalidTransport = "invalid_transport"
	ReasonInvalidDistance  = "invalid_distance"
	ReasonInvalidInput     = "invalid_input"
	ReasonOther            = "other"
)

// Metrics holds the ecoroute collectors. All methods are safe on a nil
// receiver so callers may run without metrics.
type Metrics struct {
	calculations    *prometheus.CounterVec
	errors          *prometheus.CounterVec
	emission        prometheus.Histogram
	evictions       prometheus.Counter
	storageFailures *prometheus.CounterVec
}

// NewMetrics registers the ecoroute collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoroute_calculations_total",
				Help: "Total number of successful emission calculations",
			},
			[]string{"transport", "impact"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoroute_calculation_errors_total",
				Help: "Total number of rejected emission calculations",
			},
			[]string{"reason"},
		),
		emission: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ecoroute_emission_kg",
				Help:    "Distribution of calculated trip emissions in kg CO2",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 250, 500, 1000},
			},
		),
		evictions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ecoroute_history_evictions_total",
				Help: "Total number of history entries evicted by the capacity bound",
			},
		),
		storageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoroute_storage_failures_total",
				Help: "Total number of failed persistence operations",
			},
			[]string{"operation"},
		),
	}
}

// RegisterRouteCacheStats exposes the distance resolver cache counters as
// counter functions polled at scrape time.
func RegisterRouteCacheStats(reg prometheus.Registerer, stats func() (hits, misses uint64)) {
	factory := promauto.With(reg)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ecoroute_route_cache_hits_total",
			Help: "Great-circle distance lookups served from cache",
		},
		func() float64 {
			hits, _ := stats()
			return float64(hits)
		},
	)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ecoroute_route_cache_misses_total",
			Help: "Great-circle distance lookups computed",
		},
		func() float64 {
			_, misses := stats()
			return float64(misses)
		},
	)
}

func (m *Metrics) observeCalculation(r *CalculationResult) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(r.Transport, string(r.Impact.Level)).Inc()
	m.emission.Observe(r.ExactEmissionKg)
}

func (m *Metrics) observeError(err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(ErrorReason(err)).Inc()
}

// ObserveEvictions records n history evictions.
func (m *Metrics) ObserveEvictions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictions.Add(float64(n))
}

// ObserveStorageFailure records a failed persistence operation.
func (m *Metrics) ObserveStorageFailure(operation string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(operation).Inc()
}

// ErrorReason maps a calculation error to its metric label.
func ErrorReason(err error) string {
	var (
		transportErr *InvalidTransportError
		distanceErr  *InvalidDistanceError
		inputErr     *InvalidInputError
	)
	switch {
	case errors.As(err, &transportErr):
		return ReasonInvalidTransport
	case errors.As(err, &distanceErr):
		return ReasonInvalidDistance
	case errors.As(err, &inputErr):
		return ReasonInvalidInput
	default:
		return ReasonOther
	}
}
