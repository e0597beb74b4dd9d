package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const ratingColumns = `id, team_id, season, model_version, power_rating, offense_rating,
       defense_rating, talent_component, confidence, data_source, computed_at`

const upsertRatingQuery = `
	INSERT INTO team_season_ratings (id, team_id, season, model_version, power_rating,
	                                 offense_rating, defense_rating, talent_component,
	                                 confidence, data_source, computed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (team_id, season, model_version) DO UPDATE SET
		power_rating = EXCLUDED.power_rating,
		offense_rating = EXCLUDED.offense_rating,
		defense_rating = EXCLUDED.defense_rating,
		talent_component = EXCLUDED.talent_component,
		confidence = EXCLUDED.confidence,
		data_source = EXCLUDED.data_source,
		computed_at = EXCLUDED.computed_at
`

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *database.DB
}

// NewPostgresRatingRepository creates a new rating repository
func NewPostgresRatingRepository(db *database.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

// Get retrieves one rating row by its natural key
func (r *PostgresRatingRepository) Get(ctx context.Context, teamID uuid.UUID, season int, modelVersion string) (*models.TeamSeasonRating, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM team_season_ratings
		WHERE team_id = $1 AND season = $2 AND model_version = $3
	`, ratingColumns)

	rating := &models.TeamSeasonRating{}
	err := r.db.GetPool().QueryRow(ctx, query, teamID, season, modelVersion).Scan(
		&rating.ID, &rating.TeamID, &rating.Season, &rating.ModelVersion,
		&rating.PowerRating, &rating.OffenseRating, &rating.DefenseRating,
		&rating.TalentComponent, &rating.Confidence, &rating.DataSource, &rating.ComputedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return rating, nil
}

// GetBySeason retrieves all ratings for a season and model version
func (r *PostgresRatingRepository) GetBySeason(ctx context.Context, season int, modelVersion string) ([]*models.TeamSeasonRating, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM team_season_ratings
		WHERE season = $1 AND model_version = $2
	`, ratingColumns)

	rows, err := r.db.GetPool().Query(ctx, query, season, modelVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to query season ratings: %w", err)
	}
	defer rows.Close()

	ratings := []*models.TeamSeasonRating{}
	for rows.Next() {
		rating := &models.TeamSeasonRating{}
		err := rows.Scan(
			&rating.ID, &rating.TeamID, &rating.Season, &rating.ModelVersion,
			&rating.PowerRating, &rating.OffenseRating, &rating.DefenseRating,
			&rating.TalentComponent, &rating.Confidence, &rating.DataSource, &rating.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// Upsert replaces the whole rating row keyed on (team, season, model_version)
func (r *PostgresRatingRepository) Upsert(ctx context.Context, rating *models.TeamSeasonRating) error {
	_, err := r.db.GetPool().Exec(ctx, upsertRatingQuery,
		rating.ID, rating.TeamID, rating.Season, rating.ModelVersion,
		rating.PowerRating, rating.OffenseRating, rating.DefenseRating,
		rating.TalentComponent, rating.Confidence, rating.DataSource, rating.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

// UpsertBatch replaces a full slate of ratings in one transaction, so a
// recompute either lands completely or not at all.
func (r *PostgresRatingRepository) UpsertBatch(ctx context.Context, ratings []*models.TeamSeasonRating) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, rating := range ratings {
			_, err := tx.Exec(ctx, upsertRatingQuery,
				rating.ID, rating.TeamID, rating.Season, rating.ModelVersion,
				rating.PowerRating, rating.OffenseRating, rating.DefenseRating,
				rating.TalentComponent, rating.Confidence, rating.DataSource, rating.ComputedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert rating for team %s: %w", rating.TeamID, err)
			}
		}
		return nil
	})
}
