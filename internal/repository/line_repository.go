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

const lineColumns = `id, game_id, book, line_type, value, home_price, away_price, quoted_at`

// PostgresLineRepository implements LineRepository for PostgreSQL
type PostgresLineRepository struct {
	db *database.DB
}

// NewPostgresLineRepository creates a new market line repository
func NewPostgresLineRepository(db *database.DB) LineRepository {
	return &PostgresLineRepository{db: db}
}

// Insert appends a new market line quote
func (r *PostgresLineRepository) Insert(ctx context.Context, line *models.MarketLine) error {
	query := `
		INSERT INTO market_lines (id, game_id, book, line_type, value, home_price, away_price, quoted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		line.ID, line.GameID, line.Book, line.LineType, line.Value,
		line.HomePrice, line.AwayPrice, line.QuotedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert market line: %w", err)
	}

	return nil
}

// GetAsOf retrieves the latest quote at or before a timestamp
func (r *PostgresLineRepository) GetAsOf(ctx context.Context, gameID uuid.UUID, lineType models.LineType, asOf time.Time) (*models.MarketLine, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM market_lines
		WHERE game_id = $1 AND line_type = $2 AND quoted_at <= $3
		ORDER BY quoted_at DESC
		LIMIT 1
	`, lineColumns)

	return r.queryOne(ctx, query, gameID, lineType, asOf)
}

// GetClosing retrieves the last quote recorded for a market, which stands
// in for the closing line.
func (r *PostgresLineRepository) GetClosing(ctx context.Context, gameID uuid.UUID, lineType models.LineType) (*models.MarketLine, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM market_lines
		WHERE game_id = $1 AND line_type = $2
		ORDER BY quoted_at DESC
		LIMIT 1
	`, lineColumns)

	return r.queryOne(ctx, query, gameID, lineType)
}

// GetByGameID retrieves every quote recorded for a game
func (r *PostgresLineRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.MarketLine, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM market_lines
		WHERE game_id = $1
		ORDER BY quoted_at ASC
	`, lineColumns)

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query market lines: %w", err)
	}
	defer rows.Close()

	lines := []*models.MarketLine{}
	for rows.Next() {
		line := &models.MarketLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.Book, &line.LineType, &line.Value,
			&line.HomePrice, &line.AwayPrice, &line.QuotedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *PostgresLineRepository) queryOne(ctx context.Context, query string, args ...any) (*models.MarketLine, error) {
	line := &models.MarketLine{}
	err := r.db.GetPool().QueryRow(ctx, query, args...).Scan(
		&line.ID, &line.GameID, &line.Book, &line.LineType, &line.Value,
		&line.HomePrice, &line.AwayPrice, &line.QuotedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get market line: %w", err)
	}

	return line, nil
}
