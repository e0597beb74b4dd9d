package rating

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// metricDist holds the league distribution of one metric for a season
type metricDist struct {
	mean  float64
	stdev float64
	count int
}

// LeagueDistribution holds per-metric league distributions used for
// z-score normalization. Teams with a nil value for a metric do not
// contribute to that metric's distribution.
type LeagueDistribution struct {
	dists map[string]metricDist
}

// NewLeagueDistribution computes league distributions from all season stats
func NewLeagueDistribution(stats []*models.TeamSeasonStat) *LeagueDistribution {
	dists := make(map[string]metricDist)

	for _, key := range models.TrackedMetrics() {
		values := make([]float64, 0, len(stats))
		for _, stat := range stats {
			if v, ok := stat.Metric(key); ok {
				values = append(values, v)
			}
		}
		dists[key] = newMetricDist(values)
	}

	return &LeagueDistribution{dists: dists}
}

func newMetricDist(values []float64) metricDist {
	n := len(values)
	if n == 0 {
		return metricDist{}
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n)

	return metricDist{mean: mean, stdev: math.Sqrt(variance), count: n}
}

// ZScore normalizes a value against the league distribution for a metric.
// Returns false when the distribution is degenerate (fewer than two teams
// reporting, or zero spread), in which case the metric must be skipped.
func (l *LeagueDistribution) ZScore(key string, value float64) (float64, bool) {
	dist, ok := l.dists[key]
	if !ok || dist.count < 2 || dist.stdev == 0 {
		return 0, false
	}
	return (value - dist.mean) / dist.stdev, true
}

// SampleSize returns the number of teams contributing to a metric
func (l *LeagueDistribution) SampleSize(key string) int {
	return l.dists[key].count
}
