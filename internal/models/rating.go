package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingDataSource tags the provenance of a computed rating
type RatingDataSource string

const (
	RatingSourceFull       RatingDataSource = "full"
	RatingSourceSeasonOnly RatingDataSource = "season_only"
	RatingSourceBaseline   RatingDataSource = "baseline"
)

// TeamSeasonRating represents a computed power rating for one team-season
// under one model version. Exactly one row exists per (team, season,
// model_version); recomputation replaces the whole row.
type TeamSeasonRating struct {
	ID              uuid.UUID        `db:"id" json:"id" validate:"required,uuid4"`
	TeamID          uuid.UUID        `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Season          int              `db:"season" json:"season" validate:"required,gt=0"`
	ModelVersion    string           `db:"model_version" json:"model_version" validate:"required"`
	PowerRating     float64          `db:"power_rating" json:"power_rating"`
	OffenseRating   float64          `db:"offense_rating" json:"offense_rating"`
	DefenseRating   float64          `db:"defense_rating" json:"defense_rating"`
	TalentComponent float64          `db:"talent_component" json:"talent_component"`
	Confidence      float64          `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	DataSource      RatingDataSource `db:"data_source" json:"data_source" validate:"required,oneof=full season_only baseline"`
	ComputedAt      time.Time        `db:"computed_at" json:"computed_at"`
}

// IsBaseline reports whether the rating is a no-data fallback
func (r *TeamSeasonRating) IsBaseline() bool {
	return r.DataSource == RatingSourceBaseline
}
