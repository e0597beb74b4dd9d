package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetBySeason(ctx context.Context, season int) ([]*models.Game, error)
	GetCompleted(ctx context.Context, season int, seasonType models.SeasonType) ([]*models.Game, error)
	GetFinalByDateRange(ctx context.Context, start, end time.Time) ([]*models.Game, error)
	UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error
}

// StatRepository defines read access to ingested team-season stat rows
type StatRepository interface {
	GetBySeason(ctx context.Context, season int) ([]*models.TeamSeasonStat, error)
	GetByTeamSeason(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamSeasonStat, error)
}

// RatingRepository defines the interface for power rating persistence.
// Upsert replaces the whole row keyed on (team, season, model_version).
type RatingRepository interface {
	Get(ctx context.Context, teamID uuid.UUID, season int, modelVersion string) (*models.TeamSeasonRating, error)
	GetBySeason(ctx context.Context, season int, modelVersion string) ([]*models.TeamSeasonRating, error)
	Upsert(ctx context.Context, rating *models.TeamSeasonRating) error
	UpsertBatch(ctx context.Context, ratings []*models.TeamSeasonRating) error
}

// LineRepository defines the interface for market line data access.
// Lines are append-only; there is no update method.
type LineRepository interface {
	Insert(ctx context.Context, line *models.MarketLine) error
	GetAsOf(ctx context.Context, gameID uuid.UUID, lineType models.LineType, asOf time.Time) (*models.MarketLine, error)
	GetClosing(ctx context.Context, gameID uuid.UUID, lineType models.LineType) (*models.MarketLine, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.MarketLine, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	Create(ctx context.Context, bet *models.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Bet, error)
	GetPending(ctx context.Context) ([]*models.Bet, error)
	UpdateResult(ctx context.Context, bet *models.Bet) error
}

// HfaConfigRepository defines versioned HFA calibration persistence.
// Versions are immutable once saved.
type HfaConfigRepository interface {
	Save(ctx context.Context, cfg *models.HfaConfig) error
	GetByVersion(ctx context.Context, version string) (*models.HfaConfig, error)
	GetLatest(ctx context.Context) (*models.HfaConfig, error)
}

// CalibrationFitRepository defines calibration fit persistence
type CalibrationFitRepository interface {
	Save(ctx context.Context, fit *models.CalibrationFit) error
	GetLatest(ctx context.Context, modelVersion string) (*models.CalibrationFit, error)
}

// BacktestResultRepository defines backtest run summary persistence
type BacktestResultRepository interface {
	Save(ctx context.Context, result *models.BacktestResult) error
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
	GetByModelVersion(ctx context.Context, modelVersion string) ([]*models.BacktestResult, error)
}
