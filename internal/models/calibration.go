package models

import (
	"time"

	"github.com/google/uuid"
)

// CalibrationFit represents the result of regressing market spreads on
// rating differentials across a historical game sample.
type CalibrationFit struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	ModelVersion string    `db:"model_version" json:"model_version" validate:"required"`
	Alpha        float64   `db:"alpha" json:"alpha"`
	Beta         float64   `db:"beta" json:"beta"`
	Gamma        *float64  `db:"gamma" json:"gamma"`
	Lambda       float64   `db:"lambda" json:"lambda"`
	R2           float64   `db:"r2" json:"r2"`
	RMSE         float64   `db:"rmse" json:"rmse"`
	SampleSize   int       `db:"sample_size" json:"sample_size" validate:"gte=0"`
	FittedAt     time.Time `db:"fitted_at" json:"fitted_at"`
}

// IsQuadratic reports whether the fit includes the squared term
func (c *CalibrationFit) IsQuadratic() bool {
	return c.Gamma != nil
}
