package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

// Engine orchestrates backtesting runs: it replays final games in kickoff
// order, projects each matchup with the ratings persisted for that model
// version, places qualifying picks, and grades them against the final
// score with a compounding bankroll.
type Engine struct {
	config       BacktestConfig
	db           *database.DB
	repositories *repository.Repositories
	ratings      *rating.Engine
	projector    *spread.Projector
	evaluator    *edge.Evaluator
	staker       Staker
	grader       Grader
	limits       *RiskLimits
	persistLimit *rate.Limiter
	logger       *logrus.Logger
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg BacktestConfig, db *database.DB, ratings *rating.Engine, projector *spread.Projector, evaluator *edge.Evaluator, logger *logrus.Logger) (*Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if ratings == nil || projector == nil || evaluator == nil {
		return nil, fmt.Errorf("rating engine, projector, and evaluator are required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:       cfg,
		db:           db,
		repositories: repos,
		ratings:      ratings,
		projector:    projector,
		evaluator:    evaluator,
		staker:       NewStaker(cfg),
		grader:       NewGrader(cfg.PushTolerance),
		limits:       NewRiskLimits(cfg, logger),
		// bulk bet writes are throttled so a long replay does not starve
		// the pool for live readers
		persistLimit: rate.NewLimiter(rate.Limit(200), 50),
		logger:       logger,
	}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Repositories returns the repository container
func (e *Engine) Repositories() *repository.Repositories {
	return e.repositories
}

// Run executes a full replay and persists the run summary
func (e *Engine) Run(ctx context.Context) (*BacktestState, Metrics, error) {
	e.logger.WithFields(logrus.Fields{
		"start":   e.config.StartDate,
		"end":     e.config.EndDate,
		"staking": e.config.Staking,
	}).Info("Starting backtest run")

	state, err := e.HistoricalReplay(ctx)
	if err != nil {
		return nil, Metrics{}, err
	}

	metrics := CalculateMetrics(state, e.config)
	result := metrics.ToModel(e.ratings.ModelVersion())
	if err := e.repositories.BacktestResult.Save(ctx, result); err != nil {
		return nil, Metrics{}, fmt.Errorf("failed to persist backtest result: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"total_bets":     metrics.TotalBets,
		"hit_rate":       metrics.HitRate,
		"roi":            metrics.ROI,
		"final_bankroll": metrics.FinalBankroll,
		"halted":         e.limits.Halted(),
	}).Info("Backtest run complete")

	return state, metrics, nil
}

// HistoricalReplay replays final games chronologically and simulates betting
func (e *Engine) HistoricalReplay(ctx context.Context) (*BacktestState, error) {
	state := NewBacktestState(e.config.InitialBankroll, e.config.StartDate)

	games, err := e.repositories.Game.GetFinalByDateRange(ctx, e.config.StartDate, e.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	for _, game := range games {
		if err := e.processGame(ctx, game, state); err != nil {
			return nil, err
		}
	}

	return state, nil
}

func (e *Engine) processGame(ctx context.Context, game *models.Game, state *BacktestState) error {
	if !e.limits.AllowBet(state) {
		return nil
	}

	home, err := e.ratingFor(ctx, game.HomeTeamID, game.Season)
	if err != nil {
		return err
	}
	away, err := e.ratingFor(ctx, game.AwayTeamID, game.Season)
	if err != nil {
		return err
	}

	projection, err := e.projector.Project(home, away, game.NeutralSite)
	if err != nil {
		return fmt.Errorf("failed to project game %s: %w", game.ID, err)
	}

	// only the line knowable at decision time is visible to the pick
	line, err := e.repositories.Line.GetAsOf(ctx, game.ID, models.LineTypeSpread, game.Kickoff)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load line for game %s: %w", game.ID, err)
	}

	pick := e.evaluator.EvaluateSpread(projection.Spread, line)
	if pick == nil {
		return nil
	}

	stake := e.limits.ClampStake(state.CurrentBankroll, e.staker.Stake(state.CurrentBankroll, pick.Edge))
	if stake <= 0 {
		return nil
	}

	bet := e.placeBet(game, line, pick, stake)

	closing, err := e.repositories.Line.GetClosing(ctx, game.ID, models.LineTypeSpread)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to load closing line for game %s: %w", game.ID, err)
	}

	if err := e.grader.Grade(bet, game, closing); err != nil {
		return err
	}

	state.UpdateState(bet)
	state.RecordEquityPoint(game.Kickoff, state.CurrentBankroll)

	if err := e.persistBet(ctx, bet); err != nil {
		return err
	}

	return nil
}

// Ratings are read from persisted rows, never recomputed mid-replay, so a
// backtest always reflects exactly one published rating set. A missing row
// degrades to the zero-confidence baseline.
func (e *Engine) ratingFor(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamSeasonRating, error) {
	r, err := e.repositories.Rating.Get(ctx, teamID, season, e.ratings.ModelVersion())
	if errors.Is(err, models.ErrNotFound) {
		e.logger.WithFields(logrus.Fields{
			"team_id": teamID,
			"season":  season,
		}).Warn("No persisted rating, falling back to baseline")
		return e.ratings.Baseline(teamID, season), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rating for team %s: %w", teamID, err)
	}
	return r, nil
}

func (e *Engine) placeBet(game *models.Game, line *models.MarketLine, pick *edge.Pick, stake float64) *models.Bet {
	price := line.PriceForSide(pick.Side)
	if line.HomePrice == nil && line.AwayPrice == nil {
		price = e.config.DefaultPrice
	}

	return &models.Bet{
		ID:         uuid.New(),
		GameID:     game.ID,
		LineType:   pick.LineType,
		Side:       pick.Side,
		LineTaken:  line.Value,
		PriceTaken: price,
		ModelValue: pick.ModelValue,
		Stake:      stake,
		Result:     models.BetResultPending,
		PlacedAt:   game.Kickoff,
	}
}

func (e *Engine) persistBet(ctx context.Context, bet *models.Bet) error {
	if err := e.persistLimit.Wait(ctx); err != nil {
		return err
	}
	if err := e.repositories.Bet.Create(ctx, bet); err != nil {
		return fmt.Errorf("failed to persist bet: %w", err)
	}
	return nil
}

// ReplayTime reports the wall-clock span of the configured window
func (e *Engine) ReplayTime() time.Duration {
	return e.config.EndDate.Sub(e.config.StartDate)
}
