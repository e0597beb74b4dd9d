// Package hfa trains per-team home-field-advantage adjustments from
// completed game results, shrinking small-sample estimates toward the
// league-wide base constant.
package hfa

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

// Calibrator estimates per-team deviations from the base HFA constant
type Calibrator struct {
	cfg    config.HfaConfig
	logger *logrus.Logger
}

// RatingKey identifies a team's rating within one training season. Training
// windows span seasons, and a team's rating in 2022 says nothing about its
// 2023 home games.
type RatingKey struct {
	TeamID uuid.UUID
	Season int
}

// RatingSet maps season-scoped team keys to persisted ratings
type RatingSet map[RatingKey]*models.TeamSeasonRating

// NewCalibrator creates a new HFA calibrator
func NewCalibrator(cfg config.HfaConfig, logger *logrus.Logger) *Calibrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Calibrator{cfg: cfg, logger: logger}
}

// Train builds a published HfaConfig from completed non-neutral regular
// season games, spanning as many seasons as the games slice covers. The
// ratings must come from a frozen model version, not the version currently
// being tuned, to avoid circular calibration.
func (c *Calibrator) Train(games []*models.Game, ratings RatingSet, version string) (*models.HfaConfig, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no training games", models.ErrInsufficientSample)
	}

	projector, err := spread.NewProjector(&models.HfaConfig{
		Version:     version,
		BasePoints:  c.cfg.BasePoints,
		ClipMin:     c.cfg.ClipMin,
		ClipMax:     c.cfg.ClipMax,
		Adjustments: map[uuid.UUID]models.HfaAdjustment{},
	})
	if err != nil {
		return nil, err
	}

	residualsByTeam := make(map[uuid.UUID][]float64)
	skipped := 0

	for _, game := range games {
		if !trainable(game) {
			skipped++
			continue
		}
		home, okHome := ratings[RatingKey{game.HomeTeamID, game.Season}]
		away, okAway := ratings[RatingKey{game.AwayTeamID, game.Season}]
		if !okHome || !okAway {
			// Data gap: the game cannot contribute, the run continues
			skipped++
			continue
		}

		spreadWithoutHfa, err := projector.ProjectWithoutHfa(home, away)
		if err != nil {
			return nil, err
		}

		// The residual is the home edge the base constant does not explain
		residual := game.Margin() - (spreadWithoutHfa + c.cfg.BasePoints)
		residualsByTeam[game.HomeTeamID] = append(residualsByTeam[game.HomeTeamID], residual)
	}

	if len(residualsByTeam) == 0 {
		return nil, fmt.Errorf("%w: no trainable games after filtering", models.ErrInsufficientSample)
	}

	adjustments := make(map[uuid.UUID]models.HfaAdjustment, len(residualsByTeam))
	for teamID, residuals := range residualsByTeam {
		adjustments[teamID] = c.adjustmentFor(teamID, residuals)
	}

	cfg := &models.HfaConfig{
		Version:     version,
		BasePoints:  c.cfg.BasePoints,
		ClipMin:     c.cfg.ClipMin,
		ClipMax:     c.cfg.ClipMax,
		Adjustments: adjustments,
		TrainedAt:   time.Now().UTC(),
	}

	// Clipping happens at construction, so a failure here is a bug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"teams":         len(adjustments),
		"games_skipped": skipped,
		"version":       version,
	}).Info("HFA training complete")

	return cfg, nil
}

// adjustmentFor shrinks a team's mean residual toward zero and clips the
// result so the effective HFA stays inside the configured range.
func (c *Calibrator) adjustmentFor(teamID uuid.UUID, residuals []float64) models.HfaAdjustment {
	n := float64(len(residuals))
	mean := meanOf(residuals)
	stdev := stdevOf(residuals, mean)

	raw := mean * n / (n + c.cfg.ShrinkageGames)
	clipped := clipAdjustment(raw, c.cfg.BasePoints, c.cfg.ClipMin, c.cfg.ClipMax)

	if clipped != raw {
		c.logger.WithFields(logrus.Fields{
			"team_id": teamID,
			"raw":     raw,
			"clipped": clipped,
		}).Debug("HFA adjustment clipped")
	}

	return models.HfaAdjustment{
		TeamID:        teamID,
		Points:        clipped,
		SampleSize:    len(residuals),
		MeanResidual:  mean,
		StdevResidual: stdev,
	}
}

// trainable filters to final, non-neutral, regular-season games
func trainable(game *models.Game) bool {
	return game.IsFinal() && !game.NeutralSite && game.SeasonType == models.SeasonTypeRegular
}

func clipAdjustment(adjustment, base, clipMin, clipMax float64) float64 {
	if base+adjustment < clipMin {
		return clipMin - base
	}
	if base+adjustment > clipMax {
		return clipMax - base
	}
	return adjustment
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
