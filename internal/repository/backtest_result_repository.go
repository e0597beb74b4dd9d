package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const backtestResultColumns = `id, model_version, start_date, end_date, total_bets, winning_bets,
       losing_bets, pushes, hit_rate, roi, total_staked, total_pnl, max_drawdown,
       average_clv, final_bankroll, metrics_json, created_at`

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// Save inserts a backtest run summary
func (r *PostgresBacktestResultRepository) Save(ctx context.Context, result *models.BacktestResult) error {
	query := `
		INSERT INTO backtest_results (id, model_version, start_date, end_date, total_bets,
		                              winning_bets, losing_bets, pushes, hit_rate, roi,
		                              total_staked, total_pnl, max_drawdown, average_clv,
		                              final_bankroll, metrics_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.ModelVersion, result.StartDate, result.EndDate, result.TotalBets,
		result.WinningBets, result.LosingBets, result.Pushes, result.HitRate, result.ROI,
		result.TotalStaked, result.TotalPnL, result.MaxDrawdown, result.AverageCLV,
		result.FinalBankroll, result.MetricsJSON, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest result: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent backtest runs
func (r *PostgresBacktestResultRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		ORDER BY created_at DESC
		LIMIT $1
	`, backtestResultColumns)

	return r.queryMany(ctx, query, limit)
}

// GetByModelVersion retrieves all runs for a model version
func (r *PostgresBacktestResultRepository) GetByModelVersion(ctx context.Context, modelVersion string) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		WHERE model_version = $1
		ORDER BY created_at DESC
	`, backtestResultColumns)

	return r.queryMany(ctx, query, modelVersion)
}

func (r *PostgresBacktestResultRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.BacktestResult, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results: %w", err)
	}
	defer rows.Close()

	results := []*models.BacktestResult{}
	for rows.Next() {
		result := &models.BacktestResult{}
		err := rows.Scan(
			&result.ID, &result.ModelVersion, &result.StartDate, &result.EndDate,
			&result.TotalBets, &result.WinningBets, &result.LosingBets, &result.Pushes,
			&result.HitRate, &result.ROI, &result.TotalStaked, &result.TotalPnL,
			&result.MaxDrawdown, &result.AverageCLV, &result.FinalBankroll,
			&result.MetricsJSON, &result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
