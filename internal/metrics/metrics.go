// Package metrics provides the centralized Prometheus metrics registry for
// the model core.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RatingsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "ratings_computed_total",
		Help:      "Total number of team-season ratings computed",
	})
	PicksEmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "picks_emitted_total",
		Help:      "Total number of qualifying picks emitted, by tier",
	}, []string{"tier"})
	BetsGradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "bets_graded_total",
		Help:      "Total number of bets graded, by result",
	}, []string{"result"})
	CalibrationFitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_fits_total",
		Help:      "Total number of successful calibration fits",
	})
	CalibrationFitRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_fit_rejections_total",
		Help:      "Total number of calibration fits rejected for sample or stability",
	})
	DataGapsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "data_gaps_total",
		Help:      "Total number of missing-input degradations",
	})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_bankroll",
		Help:      "Bankroll of the most recent backtest run",
	})
	BacktestHitRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_hit_rate",
		Help:      "Hit rate of the most recent backtest run, pushes excluded",
	})
	CalibrationR2 = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_r2",
		Help:      "R-squared of the latest calibration fit",
	})
	HfaBasePoints = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "hfa_base_points",
		Help:      "Base home-field advantage of the active calibration",
	})
)

// Histogram metrics
var (
	RatingComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "rating_compute_duration_seconds",
		Help:      "Duration of full-season rating computation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	EdgeMagnitude = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "edge_magnitude_points",
		Help:      "Absolute edge of emitted picks in points",
		Buckets:   []float64{2, 2.5, 3, 3.5, 4, 5, 6, 8, 10},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RatingsComputedTotal)
		registry.MustRegister(PicksEmittedTotal)
		registry.MustRegister(BetsGradedTotal)
		registry.MustRegister(CalibrationFitsTotal)
		registry.MustRegister(CalibrationFitRejectionsTotal)
		registry.MustRegister(DataGapsTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(BacktestHitRate)
		registry.MustRegister(CalibrationR2)
		registry.MustRegister(HfaBasePoints)

		registry.MustRegister(RatingComputeDuration)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(EdgeMagnitude)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPickEmitted records a qualifying pick by tier
func RecordPickEmitted(tier string, edgeMagnitude float64) {
	PicksEmittedTotal.WithLabelValues(tier).Inc()
	EdgeMagnitude.Observe(edgeMagnitude)
}

// RecordBetGraded records one graded bet by terminal result
func RecordBetGraded(result string) {
	BetsGradedTotal.WithLabelValues(result).Inc()
}

// RecordDataGap records a degraded-confidence computation
func RecordDataGap() {
	DataGapsTotal.Inc()
}

// RecordFitRejected records a rejected calibration fit
func RecordFitRejected() {
	CalibrationFitRejectionsTotal.Inc()
}
