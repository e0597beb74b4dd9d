package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const gameColumns = `id, season, week, season_type, home_team_id, away_team_id,
       neutral_site, kickoff, status, home_score, away_score, created_at, updated_at`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create inserts a new game
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, season, week, season_type, home_team_id, away_team_id,
		                   neutral_site, kickoff, status, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.Season, game.Week, game.SeasonType, game.HomeTeamID, game.AwayTeamID,
		game.NeutralSite, game.Kickoff, game.Status, game.HomeScore, game.AwayScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.Season, &game.Week, &game.SeasonType, &game.HomeTeamID, &game.AwayTeamID,
		&game.NeutralSite, &game.Kickoff, &game.Status, &game.HomeScore, &game.AwayScore,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetBySeason retrieves all games for a season ordered by kickoff
func (r *PostgresGameRepository) GetBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE season = $1 ORDER BY kickoff ASC`, gameColumns)

	rows, err := r.db.GetPool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by season: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetCompleted retrieves final games for a season and season type
func (r *PostgresGameRepository) GetCompleted(ctx context.Context, season int, seasonType models.SeasonType) ([]*models.Game, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM games
		WHERE season = $1 AND season_type = $2 AND status = 'final'
		  AND home_score IS NOT NULL AND away_score IS NOT NULL
		ORDER BY kickoff ASC
	`, gameColumns)

	rows, err := r.db.GetPool().Query(ctx, query, season, seasonType)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetFinalByDateRange retrieves final games with kickoffs inside a window,
// ordered chronologically for replay.
func (r *PostgresGameRepository) GetFinalByDateRange(ctx context.Context, start, end time.Time) ([]*models.Game, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM games
		WHERE kickoff >= $1 AND kickoff <= $2 AND status = 'final'
		  AND home_score IS NOT NULL AND away_score IS NOT NULL
		ORDER BY kickoff ASC
	`, gameColumns)

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date range: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// UpdateScore records a final score and flips the game to final
func (r *PostgresGameRepository) UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	query := `
		UPDATE games
		SET home_score = $2, away_score = $3, status = 'final', updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, id, homeScore, awayScore)
	if err != nil {
		return fmt.Errorf("failed to update game score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanGames(rows pgx.Rows) ([]*models.Game, error) {
	games := []*models.Game{}
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.Week, &game.SeasonType, &game.HomeTeamID, &game.AwayTeamID,
			&game.NeutralSite, &game.Kickoff, &game.Status, &game.HomeScore, &game.AwayScore,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
