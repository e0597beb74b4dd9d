package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HfaAdjustment represents one team's deviation from the base home-field
// constant, with the residual diagnostics it was derived from.
type HfaAdjustment struct {
	TeamID        uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Points        float64   `db:"points" json:"points"`
	SampleSize    int       `db:"sample_size" json:"sample_size" validate:"gte=0"`
	MeanResidual  float64   `db:"mean_residual" json:"mean_residual"`
	StdevResidual float64   `db:"stdev_residual" json:"stdev_residual"`
}

// HfaConfig represents a published home-field-advantage calibration.
// Immutable once published; retraining produces a new version.
type HfaConfig struct {
	Version     string                      `db:"version" json:"version" validate:"required"`
	BasePoints  float64                     `db:"base_points" json:"base_points"`
	ClipMin     float64                     `db:"clip_min" json:"clip_min"`
	ClipMax     float64                     `db:"clip_max" json:"clip_max"`
	Adjustments map[uuid.UUID]HfaAdjustment `db:"adjustments" json:"adjustments"`
	TrainedAt   time.Time                   `db:"trained_at" json:"trained_at"`
}

// EffectivePoints returns the home edge for a team. Neutral-site games get
// zero; teams absent from the adjustment map fall back to the base constant.
func (h *HfaConfig) EffectivePoints(teamID uuid.UUID, neutralSite bool) float64 {
	if neutralSite {
		return 0
	}
	if adj, ok := h.Adjustments[teamID]; ok {
		return h.BasePoints + adj.Points
	}
	return h.BasePoints
}

// Validate enforces the clip invariant on every adjustment entry
func (h *HfaConfig) Validate() error {
	if h.ClipMin > h.ClipMax {
		return fmt.Errorf("%w: clip_min %.2f above clip_max %.2f", ErrInvariantViolation, h.ClipMin, h.ClipMax)
	}
	for teamID, adj := range h.Adjustments {
		effective := h.BasePoints + adj.Points
		if effective < h.ClipMin || effective > h.ClipMax {
			return fmt.Errorf("%w: team %s effective hfa %.2f outside [%.2f, %.2f]",
				ErrInvariantViolation, teamID, effective, h.ClipMin, h.ClipMax)
		}
	}
	return nil
}
