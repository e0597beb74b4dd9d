// Package service wires the rating engine, projector, edge evaluator, and
// fitters into the operations the command-line tools and scheduler call.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/backtest"
	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/hfa"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

// ModelService exposes the model core as coarse operations. All reads of
// ratings go through the persisted rows (with a short-lived cache in
// front), so every consumer sees the same published rating set.
type ModelService struct {
	cfg          *config.Config
	db           *database.DB
	repositories *repository.Repositories
	ratingEngine *rating.Engine
	evaluator    *edge.Evaluator
	fitter       *calibration.Fitter
	logger       *logrus.Logger
	audit        *logger.AuditLogger
	ratingCache  *gocache.Cache
}

// NewModelService creates the service facade
func NewModelService(cfg *config.Config, db *database.DB, log *logrus.Logger) (*ModelService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		log = logrus.New()
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, err
	}

	evaluator, err := edge.NewEvaluator(cfg.Edge)
	if err != nil {
		return nil, err
	}

	return &ModelService{
		cfg:          cfg,
		db:           db,
		repositories: repos,
		ratingEngine: rating.NewEngine(cfg.Model, log),
		evaluator:    evaluator,
		fitter:       calibration.NewFitter(cfg.Calibration, log),
		logger:       log,
		audit:        logger.NewAuditLogger(log),
		ratingCache:  gocache.New(10*time.Minute, 30*time.Minute),
	}, nil
}

// Repositories exposes the repository container for command-line tools
func (s *ModelService) Repositories() *repository.Repositories {
	return s.repositories
}

// RatingEngine exposes the configured rating engine
func (s *ModelService) RatingEngine() *rating.Engine {
	return s.ratingEngine
}

// Evaluator exposes the configured edge evaluator
func (s *ModelService) Evaluator() *edge.Evaluator {
	return s.evaluator
}

// ComputeRatings recomputes the full rating slate for a season and
// atomically replaces the persisted rows for this model version.
func (s *ModelService) ComputeRatings(ctx context.Context, season int) ([]*models.TeamSeasonRating, error) {
	started := time.Now()

	stats, err := s.repositories.Stat.GetBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: no stat rows for season %d", models.ErrInsufficientSample, season)
	}

	ratings := s.ratingEngine.ComputeSeason(stats, season)
	if err := s.repositories.Rating.UpsertBatch(ctx, ratings); err != nil {
		return nil, err
	}

	s.ratingCache.Flush()
	metrics.RatingsComputedTotal.Add(float64(len(ratings)))
	metrics.RatingComputeDuration.Observe(time.Since(started).Seconds())

	s.logger.WithFields(logrus.Fields{
		"season":        season,
		"teams":         len(ratings),
		"model_version": s.ratingEngine.ModelVersion(),
	}).Info("Season ratings recomputed")

	return ratings, nil
}

// TrainHfa trains and persists a new HFA calibration version from the
// completed regular-season games of the given training seasons and the
// ratings persisted for each of them.
func (s *ModelService) TrainHfa(ctx context.Context, seasons []int, version string) (*models.HfaConfig, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("%w: no training seasons", models.ErrInsufficientSample)
	}

	var games []*models.Game
	ratings := hfa.RatingSet{}
	for _, season := range seasons {
		seasonGames, err := s.repositories.Game.GetCompleted(ctx, season, models.SeasonTypeRegular)
		if err != nil {
			return nil, fmt.Errorf("failed to load completed games for season %d: %w", season, err)
		}
		games = append(games, seasonGames...)

		ratingRows, err := s.repositories.Rating.GetBySeason(ctx, season, s.ratingEngine.ModelVersion())
		if err != nil {
			return nil, fmt.Errorf("failed to load ratings for season %d: %w", season, err)
		}
		for _, r := range ratingRows {
			ratings[hfa.RatingKey{TeamID: r.TeamID, Season: r.Season}] = r
		}
	}

	calibrator := hfa.NewCalibrator(s.cfg.Hfa, s.logger)
	hfaConfig, err := calibrator.Train(games, ratings, version)
	if err != nil {
		return nil, err
	}

	if err := s.repositories.HfaConfig.Save(ctx, hfaConfig); err != nil {
		return nil, err
	}
	metrics.HfaBasePoints.Set(hfaConfig.BasePoints)

	return hfaConfig, nil
}

// ProjectSpread projects one scheduled game using the latest published HFA
// calibration and the persisted ratings.
func (s *ModelService) ProjectSpread(ctx context.Context, gameID uuid.UUID) (spread.Projection, error) {
	game, err := s.repositories.Game.GetByID(ctx, gameID)
	if err != nil {
		return spread.Projection{}, err
	}

	projector, err := s.latestProjector(ctx)
	if err != nil {
		return spread.Projection{}, err
	}

	home, err := s.cachedRating(ctx, game.HomeTeamID, game.Season)
	if err != nil {
		return spread.Projection{}, err
	}
	away, err := s.cachedRating(ctx, game.AwayTeamID, game.Season)
	if err != nil {
		return spread.Projection{}, err
	}

	return projector.Project(home, away, game.NeutralSite)
}

// EvaluateEdge projects a game, pulls the current spread quote, and returns
// a qualifying pick or nil.
func (s *ModelService) EvaluateEdge(ctx context.Context, gameID uuid.UUID, asOf time.Time) (*edge.Pick, error) {
	projection, err := s.ProjectSpread(ctx, gameID)
	if err != nil {
		return nil, err
	}

	line, err := s.repositories.Line.GetAsOf(ctx, gameID, models.LineTypeSpread, asOf)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pick := s.evaluator.EvaluateSpread(projection.Spread, line)
	if pick != nil {
		metrics.RecordPickEmitted(string(pick.Tier), pick.Edge)
		s.audit.LogPickEmitted(gameID.String(), string(pick.LineType), string(pick.Side),
			string(pick.Tier), pick.ModelValue, pick.MarketValue, pick.Edge, time.Now().UTC())
	}

	return pick, nil
}

// FitCalibration regresses closing spreads on persisted rating
// differentials over a season and stores the resulting coefficients.
// Ratings come from the stored rows, never a fresh recompute, so the fit
// matches what the projector actually used.
func (s *ModelService) FitCalibration(ctx context.Context, season int) (*models.CalibrationFit, error) {
	games, err := s.repositories.Game.GetCompleted(ctx, season, models.SeasonTypeRegular)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed games: %w", err)
	}

	samples := make([]calibration.Sample, 0, len(games))
	for _, game := range games {
		home, err := s.cachedRating(ctx, game.HomeTeamID, game.Season)
		if err != nil {
			return nil, err
		}
		away, err := s.cachedRating(ctx, game.AwayTeamID, game.Season)
		if err != nil {
			return nil, err
		}
		if home.IsBaseline() || away.IsBaseline() {
			metrics.RecordDataGap()
			continue
		}

		closing, err := s.repositories.Line.GetClosing(ctx, game.ID, models.LineTypeSpread)
		if errors.Is(err, models.ErrNotFound) {
			metrics.RecordDataGap()
			continue
		}
		if err != nil {
			return nil, err
		}

		samples = append(samples, calibration.Sample{
			GameID:       game.ID,
			RatingDiff:   home.PowerRating - away.PowerRating,
			MarketSpread: spread.MarketToModel(closing.Value),
		})
	}

	fit, err := s.fitter.Fit(samples, s.ratingEngine.ModelVersion())
	if err != nil {
		metrics.RecordFitRejected()
		s.audit.LogFitRejected(s.ratingEngine.ModelVersion(), err.Error(), len(samples))
		return nil, err
	}

	if err := s.repositories.CalibrationFit.Save(ctx, fit); err != nil {
		return nil, err
	}
	metrics.CalibrationFitsTotal.Inc()
	metrics.CalibrationR2.Set(fit.R2)

	return fit, nil
}

// RunBacktest replays the configured window with the latest published HFA
// calibration and persisted ratings, returning the run metrics.
func (s *ModelService) RunBacktest(ctx context.Context) (backtest.Metrics, error) {
	started := time.Now()

	btConfig, err := backtest.FromConfig(&s.cfg.Backtest)
	if err != nil {
		return backtest.Metrics{}, err
	}

	projector, err := s.latestProjector(ctx)
	if err != nil {
		return backtest.Metrics{}, err
	}

	engine, err := backtest.NewEngine(btConfig, s.db, s.ratingEngine, projector, s.evaluator, s.logger)
	if err != nil {
		return backtest.Metrics{}, err
	}

	_, runMetrics, err := engine.Run(ctx)
	if err != nil {
		return backtest.Metrics{}, err
	}

	metrics.BacktestDuration.Observe(time.Since(started).Seconds())
	metrics.CurrentBankroll.Set(runMetrics.FinalBankroll)
	metrics.BacktestHitRate.Set(runMetrics.HitRate)

	return runMetrics, nil
}

// GradePendingBets settles every pending bet whose game has gone final
func (s *ModelService) GradePendingBets(ctx context.Context) (int, error) {
	pending, err := s.repositories.Bet.GetPending(ctx)
	if err != nil {
		return 0, err
	}

	grader := backtest.NewGrader(s.cfg.Backtest.PushTolerance)
	graded := 0
	now := time.Now().UTC()

	for _, bet := range pending {
		game, err := s.repositories.Game.GetByID(ctx, bet.GameID)
		if err != nil {
			return graded, err
		}
		if !game.IsGradeable(now) {
			continue
		}

		closing, err := s.repositories.Line.GetClosing(ctx, game.ID, bet.LineType)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return graded, err
		}

		if err := grader.Grade(bet, game, closing); err != nil {
			return graded, err
		}
		if err := s.repositories.Bet.UpdateResult(ctx, bet); err != nil {
			if errors.Is(err, models.ErrBetAlreadyGraded) {
				continue
			}
			return graded, err
		}

		metrics.RecordBetGraded(string(bet.Result))
		s.audit.LogBetGraded(bet.ID.String(), bet.GameID.String(), string(bet.Result),
			bet.Stake, bet.NetPnL(), derefFloat(bet.CLV))
		graded++
	}

	return graded, nil
}

func (s *ModelService) latestProjector(ctx context.Context) (*spread.Projector, error) {
	hfaConfig, err := s.repositories.HfaConfig.GetLatest(ctx)
	if errors.Is(err, models.ErrNotFound) {
		// no trained calibration yet: run on the configured base constant
		hfaConfig = &models.HfaConfig{
			Version:    "base",
			BasePoints: s.cfg.Hfa.BasePoints,
			ClipMin:    s.cfg.Hfa.ClipMin,
			ClipMax:    s.cfg.Hfa.ClipMax,
		}
	} else if err != nil {
		return nil, err
	}

	return spread.NewProjector(hfaConfig)
}

func (s *ModelService) cachedRating(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamSeasonRating, error) {
	key := fmt.Sprintf("%s:%d:%s", teamID, season, s.ratingEngine.ModelVersion())
	if cached, ok := s.ratingCache.Get(key); ok {
		return cached.(*models.TeamSeasonRating), nil
	}

	r, err := s.repositories.Rating.Get(ctx, teamID, season, s.ratingEngine.ModelVersion())
	if errors.Is(err, models.ErrNotFound) {
		metrics.RecordDataGap()
		r = s.ratingEngine.Baseline(teamID, season)
	} else if err != nil {
		return nil, err
	}

	s.ratingCache.Set(key, r, gocache.DefaultExpiration)
	return r, nil
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
