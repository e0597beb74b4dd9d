package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresCalibrationFitRepository implements CalibrationFitRepository for PostgreSQL
type PostgresCalibrationFitRepository struct {
	db *database.DB
}

// NewPostgresCalibrationFitRepository creates a new calibration fit repository
func NewPostgresCalibrationFitRepository(db *database.DB) CalibrationFitRepository {
	return &PostgresCalibrationFitRepository{db: db}
}

// Save inserts a new calibration fit record
func (r *PostgresCalibrationFitRepository) Save(ctx context.Context, fit *models.CalibrationFit) error {
	query := `
		INSERT INTO calibration_fits (id, model_version, alpha, beta, gamma, lambda,
		                              r2, rmse, sample_size, fitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fit.ID, fit.ModelVersion, fit.Alpha, fit.Beta, fit.Gamma, fit.Lambda,
		fit.R2, fit.RMSE, fit.SampleSize, fit.FittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save calibration fit: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent fit for a model version
func (r *PostgresCalibrationFitRepository) GetLatest(ctx context.Context, modelVersion string) (*models.CalibrationFit, error) {
	query := `
		SELECT id, model_version, alpha, beta, gamma, lambda, r2, rmse, sample_size, fitted_at
		FROM calibration_fits
		WHERE model_version = $1
		ORDER BY fitted_at DESC
		LIMIT 1
	`

	fit := &models.CalibrationFit{}
	err := r.db.GetPool().QueryRow(ctx, query, modelVersion).Scan(
		&fit.ID, &fit.ModelVersion, &fit.Alpha, &fit.Beta, &fit.Gamma, &fit.Lambda,
		&fit.R2, &fit.RMSE, &fit.SampleSize, &fit.FittedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calibration fit: %w", err)
	}

	return fit, nil
}
