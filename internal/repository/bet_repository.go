package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const betColumns = `id, game_id, line_type, side, line_taken, price_taken, model_value,
       closing_line, closing_price, stake, result, profit_loss, clv, placed_at, graded_at`

// PostgresBetRepository implements BetRepository for PostgreSQL
type PostgresBetRepository struct {
	db *database.DB
}

// NewPostgresBetRepository creates a new bet repository
func NewPostgresBetRepository(db *database.DB) BetRepository {
	return &PostgresBetRepository{db: db}
}

// Create inserts a new bet
func (r *PostgresBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (id, game_id, line_type, side, line_taken, price_taken, model_value,
		                  closing_line, closing_price, stake, result, profit_loss, clv,
		                  placed_at, graded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		bet.ID, bet.GameID, bet.LineType, bet.Side, bet.LineTaken, bet.PriceTaken,
		bet.ModelValue, bet.ClosingLine, bet.ClosingPrice, bet.Stake, bet.Result,
		bet.ProfitLoss, bet.CLV, bet.PlacedAt, bet.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// GetByID retrieves a bet by ID
func (r *PostgresBetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	query := fmt.Sprintf(`SELECT %s FROM bets WHERE id = $1`, betColumns)

	bet := &models.Bet{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&bet.ID, &bet.GameID, &bet.LineType, &bet.Side, &bet.LineTaken, &bet.PriceTaken,
		&bet.ModelValue, &bet.ClosingLine, &bet.ClosingPrice, &bet.Stake, &bet.Result,
		&bet.ProfitLoss, &bet.CLV, &bet.PlacedAt, &bet.GradedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}

	return bet, nil
}

// GetByGameID retrieves all bets on a game
func (r *PostgresBetRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Bet, error) {
	query := fmt.Sprintf(`SELECT %s FROM bets WHERE game_id = $1 ORDER BY placed_at ASC`, betColumns)
	return r.queryMany(ctx, query, gameID)
}

// GetPending retrieves ungraded bets ordered by placement time
func (r *PostgresBetRepository) GetPending(ctx context.Context) ([]*models.Bet, error) {
	query := fmt.Sprintf(`SELECT %s FROM bets WHERE result = 'pending' ORDER BY placed_at ASC`, betColumns)
	return r.queryMany(ctx, query)
}

// UpdateResult writes the graded outcome. The WHERE clause only matches
// pending rows, so grading the same bet twice cannot overwrite a result.
func (r *PostgresBetRepository) UpdateResult(ctx context.Context, bet *models.Bet) error {
	query := `
		UPDATE bets
		SET result = $2, profit_loss = $3, closing_line = $4, closing_price = $5,
		    clv = $6, graded_at = $7
		WHERE id = $1 AND result = 'pending'
	`

	tag, err := r.db.GetPool().Exec(ctx, query,
		bet.ID, bet.Result, bet.ProfitLoss, bet.ClosingLine, bet.ClosingPrice,
		bet.CLV, bet.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update bet result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBetAlreadyGraded
	}

	return nil
}

func (r *PostgresBetRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Bet, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	bets := []*models.Bet{}
	for rows.Next() {
		bet := &models.Bet{}
		err := rows.Scan(
			&bet.ID, &bet.GameID, &bet.LineType, &bet.Side, &bet.LineTaken, &bet.PriceTaken,
			&bet.ModelValue, &bet.ClosingLine, &bet.ClosingPrice, &bet.Stake, &bet.Result,
			&bet.ProfitLoss, &bet.CLV, &bet.PlacedAt, &bet.GradedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}
