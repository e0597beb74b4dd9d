// Package rating implements the power rating engine: z-score normalization
// of team efficiency metrics, weighted blending, and a decayed talent signal,
// rescaled onto a point-spread scale by the configured calibration factor.
package rating

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Metrics where a lower raw value means a better team. Their z-scores are
// inverted before blending so that higher always means stronger.
var invertedMetrics = map[string]bool{
	models.MetricDefYPP:     true,
	models.MetricDefSuccess: true,
	models.MetricDefEPA:     true,
}

var defensiveMetrics = map[string]bool{
	models.MetricDefYPP:     true,
	models.MetricDefSuccess: true,
	models.MetricDefEPA:     true,
}

// Engine computes team-season power ratings
type Engine struct {
	cfg    config.ModelConfig
	logger *logrus.Logger
}

// NewEngine creates a new rating engine
func NewEngine(cfg config.ModelConfig, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// ModelVersion returns the version tag stamped on computed ratings
func (e *Engine) ModelVersion() string {
	return e.cfg.Version
}

// ComputeSeason computes one rating per input stat row. Output is total:
// a team with an empty stat row still yields a baseline rating rather than
// an error, and downstream consumers treat its zero confidence as advisory.
func (e *Engine) ComputeSeason(stats []*models.TeamSeasonStat, season int) []*models.TeamSeasonRating {
	league := NewLeagueDistribution(stats)
	talentDist := talentDistribution(stats)

	ratings := make([]*models.TeamSeasonRating, 0, len(stats))
	for _, stat := range stats {
		ratings = append(ratings, e.computeTeam(stat, league, talentDist, season))
	}
	return ratings
}

// Baseline returns the fallback rating for a team with no stat row at all.
// Used when a team appears in the schedule but not in the stats dataset;
// this is a data gap, not an error.
func (e *Engine) Baseline(teamID uuid.UUID, season int) *models.TeamSeasonRating {
	return &models.TeamSeasonRating{
		ID:           uuid.New(),
		TeamID:       teamID,
		Season:       season,
		ModelVersion: e.cfg.Version,
		PowerRating:  e.cfg.BaselineRating,
		Confidence:   0,
		DataSource:   models.RatingSourceBaseline,
		ComputedAt:   time.Now().UTC(),
	}
}

func (e *Engine) computeTeam(stat *models.TeamSeasonStat, league *LeagueDistribution, talentDist metricDist, season int) *models.TeamSeasonRating {
	if !stat.HasAnyMetric() {
		baseline := e.Baseline(stat.TeamID, season)
		e.logger.WithFields(logrus.Fields{
			"team_id": stat.TeamID,
			"season":  season,
		}).Debug("No metrics for team, falling back to baseline rating")
		return baseline
	}

	offense, offPresent := e.blendGroup(stat, league, false)
	defense, defPresent := e.blendGroup(stat, league, true)
	talent := e.talentComponent(stat, talentDist)

	power := (offense + defense + talent) * e.cfg.CalibrationFactor

	return &models.TeamSeasonRating{
		ID:              uuid.New(),
		TeamID:          stat.TeamID,
		Season:          season,
		ModelVersion:    e.cfg.Version,
		PowerRating:     power,
		OffenseRating:   offense,
		DefenseRating:   defense,
		TalentComponent: talent,
		Confidence:      e.confidence(stat, offPresent+defPresent),
		DataSource:      dataSource(stat),
		ComputedAt:      time.Now().UTC(),
	}
}

// blendGroup computes the weighted average of present z-scores for either
// the offensive or defensive metric group. Missing metrics contribute zero
// weight; they are never imputed to the league mean.
func (e *Engine) blendGroup(stat *models.TeamSeasonStat, league *LeagueDistribution, defensive bool) (float64, int) {
	weighted := 0.0
	totalWeight := 0.0
	present := 0

	for _, key := range models.TrackedMetrics() {
		if defensiveMetrics[key] != defensive {
			continue
		}
		weight := e.cfg.MetricWeights[key]
		if weight <= 0 {
			continue
		}
		value, ok := stat.Metric(key)
		if !ok {
			continue
		}
		z, ok := league.ZScore(key, value)
		if !ok {
			continue
		}
		if invertedMetrics[key] {
			z = -z
		}
		weighted += weight * z
		totalWeight += weight
		present++
	}

	if totalWeight == 0 {
		return 0, 0
	}
	return weighted / totalWeight, present
}

// talentComponent blends in the recruiting signal, decayed by games played:
// the more on-field evidence a season has produced, the less the roster
// talent composite should move the rating.
func (e *Engine) talentComponent(stat *models.TeamSeasonStat, talentDist metricDist) float64 {
	if stat.TalentComposite == nil || e.cfg.TalentWeight <= 0 {
		return 0
	}
	if talentDist.count < 2 || talentDist.stdev == 0 {
		return 0
	}

	z := (*stat.TalentComposite - talentDist.mean) / talentDist.stdev
	decay := 1.0 - e.cfg.TalentDecayPerGame*float64(stat.GamesPlayed)
	if decay < 0 {
		decay = 0
	}
	return z * decay * e.cfg.TalentWeight
}

// confidence reflects metric completeness and sample size
func (e *Engine) confidence(stat *models.TeamSeasonStat, metricsPresent int) float64 {
	tracked := len(models.TrackedMetrics())
	completeness := float64(metricsPresent) / float64(tracked)

	games := float64(stat.GamesPlayed) / float64(e.cfg.FullConfidenceGames)
	if games > 1 {
		games = 1
	}

	return completeness * games
}

func dataSource(stat *models.TeamSeasonStat) models.RatingDataSource {
	if !stat.HasAnyMetric() {
		return models.RatingSourceBaseline
	}
	if stat.GamesPlayed > 0 {
		return models.RatingSourceFull
	}
	return models.RatingSourceSeasonOnly
}

func talentDistribution(stats []*models.TeamSeasonStat) metricDist {
	values := make([]float64, 0, len(stats))
	for _, stat := range stats {
		if stat.TalentComposite != nil {
			values = append(values, *stat.TalentComposite)
		}
	}
	return newMetricDist(values)
}
