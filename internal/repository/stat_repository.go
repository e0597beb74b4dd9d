package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const statColumns = `id, team_id, season, games_played, off_yards_per_play, def_yards_per_play,
       off_success_rate, def_success_rate, off_epa_per_play, def_epa_per_play,
       plays_per_game, talent_composite, raw_metrics, updated_at`

// PostgresStatRepository implements StatRepository for PostgreSQL
type PostgresStatRepository struct {
	db *database.DB
}

// NewPostgresStatRepository creates a new stat repository
func NewPostgresStatRepository(db *database.DB) StatRepository {
	return &PostgresStatRepository{db: db}
}

// GetBySeason retrieves all team stat rows for a season
func (r *PostgresStatRepository) GetBySeason(ctx context.Context, season int) ([]*models.TeamSeasonStat, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_season_stats WHERE season = $1`, statColumns)

	rows, err := r.db.GetPool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season stats: %w", err)
	}
	defer rows.Close()

	stats := []*models.TeamSeasonStat{}
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// GetByTeamSeason retrieves one team's stat row for a season
func (r *PostgresStatRepository) GetByTeamSeason(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamSeasonStat, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_season_stats WHERE team_id = $1 AND season = $2`, statColumns)

	row := r.db.GetPool().QueryRow(ctx, query, teamID, season)
	stat, err := scanStat(row)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return stat, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStat(row rowScanner) (*models.TeamSeasonStat, error) {
	stat := &models.TeamSeasonStat{}
	err := row.Scan(
		&stat.ID, &stat.TeamID, &stat.Season, &stat.GamesPlayed,
		&stat.OffYardsPerPlay, &stat.DefYardsPerPlay,
		&stat.OffSuccessRate, &stat.DefSuccessRate,
		&stat.OffEPAPerPlay, &stat.DefEPAPerPlay,
		&stat.PlaysPerGame, &stat.TalentComposite,
		&stat.RawMetrics, &stat.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team season stat: %w", err)
	}
	return stat, nil
}
