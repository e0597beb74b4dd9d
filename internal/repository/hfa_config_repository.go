package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresHfaConfigRepository implements HfaConfigRepository for PostgreSQL.
// Per-team adjustments travel as a JSONB document; a calibration is always
// read and written as one atomic unit.
type PostgresHfaConfigRepository struct {
	db *database.DB
}

// NewPostgresHfaConfigRepository creates a new HFA config repository
func NewPostgresHfaConfigRepository(db *database.DB) HfaConfigRepository {
	return &PostgresHfaConfigRepository{db: db}
}

// Save inserts a new calibration version. Versions are immutable, so a
// duplicate version is a conflict, not an update.
func (r *PostgresHfaConfigRepository) Save(ctx context.Context, cfg *models.HfaConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	adjustments, err := json.Marshal(cfg.Adjustments)
	if err != nil {
		return fmt.Errorf("failed to encode hfa adjustments: %w", err)
	}

	query := `
		INSERT INTO hfa_configs (version, base_points, clip_min, clip_max, adjustments, trained_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		cfg.Version, cfg.BasePoints, cfg.ClipMin, cfg.ClipMax, adjustments, cfg.TrainedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save hfa config: %w", err)
	}

	return nil
}

// GetByVersion retrieves one calibration by version
func (r *PostgresHfaConfigRepository) GetByVersion(ctx context.Context, version string) (*models.HfaConfig, error) {
	query := `
		SELECT version, base_points, clip_min, clip_max, adjustments, trained_at
		FROM hfa_configs WHERE version = $1
	`
	return r.queryOne(ctx, query, version)
}

// GetLatest retrieves the most recently trained calibration
func (r *PostgresHfaConfigRepository) GetLatest(ctx context.Context) (*models.HfaConfig, error) {
	query := `
		SELECT version, base_points, clip_min, clip_max, adjustments, trained_at
		FROM hfa_configs
		ORDER BY trained_at DESC
		LIMIT 1
	`
	return r.queryOne(ctx, query)
}

func (r *PostgresHfaConfigRepository) queryOne(ctx context.Context, query string, args ...any) (*models.HfaConfig, error) {
	cfg := &models.HfaConfig{}
	var adjustments []byte

	err := r.db.GetPool().QueryRow(ctx, query, args...).Scan(
		&cfg.Version, &cfg.BasePoints, &cfg.ClipMin, &cfg.ClipMax, &adjustments, &cfg.TrainedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hfa config: %w", err)
	}

	if err := json.Unmarshal(adjustments, &cfg.Adjustments); err != nil {
		return nil, fmt.Errorf("failed to decode hfa adjustments: %w", err)
	}

	return cfg, nil
}
