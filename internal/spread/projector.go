package spread

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Projection represents a projected point spread in the HMA frame
type Projection struct {
	Spread     float64 `json:"spread"`
	Hfa        float64 `json:"hfa"`
	Confidence float64 `json:"confidence"`
}

// Projector converts two power ratings and a published HFA calibration into
// a model spread. It is a pure function of its inputs: no hidden state, and
// identical inputs always produce identical output.
type Projector struct {
	hfa *models.HfaConfig
}

// NewProjector creates a projector bound to one published HFA calibration
func NewProjector(hfa *models.HfaConfig) (*Projector, error) {
	if hfa == nil {
		return nil, fmt.Errorf("hfa config is required")
	}
	if err := hfa.Validate(); err != nil {
		return nil, err
	}
	return &Projector{hfa: hfa}, nil
}

// Project produces the model spread for a matchup in the HMA frame
// (positive means home favored).
func (p *Projector) Project(home, away *models.TeamSeasonRating, neutralSite bool) (Projection, error) {
	if home == nil || away == nil {
		return Projection{}, fmt.Errorf("both ratings are required")
	}

	hfa := p.hfa.EffectivePoints(home.TeamID, neutralSite)
	return Projection{
		Spread:     (home.PowerRating - away.PowerRating) + hfa,
		Hfa:        hfa,
		Confidence: minConfidence(home, away),
	}, nil
}

// ProjectWithoutHfa produces the matchup spread with HFA forced to zero.
// Used by HFA training, which must measure the home edge the ratings alone
// do not explain.
func (p *Projector) ProjectWithoutHfa(home, away *models.TeamSeasonRating) (float64, error) {
	if home == nil || away == nil {
		return 0, fmt.Errorf("both ratings are required")
	}
	return home.PowerRating - away.PowerRating, nil
}

// EffectiveHfa exposes the calibrated home edge for a team
func (p *Projector) EffectiveHfa(teamID uuid.UUID, neutralSite bool) float64 {
	return p.hfa.EffectivePoints(teamID, neutralSite)
}

// BasePoints returns the league-wide base HFA constant
func (p *Projector) BasePoints() float64 {
	return p.hfa.BasePoints
}

// The weaker side of the matchup bounds how much the projection can be
// trusted, so the pairwise confidence is the minimum, not the mean.
func minConfidence(home, away *models.TeamSeasonRating) float64 {
	if home.Confidence < away.Confidence {
		return home.Confidence
	}
	return away.Confidence
}
