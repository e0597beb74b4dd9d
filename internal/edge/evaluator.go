// Package edge compares model projections to market quotes and emits
// tiered directional picks.
package edge

import (
	"fmt"
	"math"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

// Tier grades a pick by edge magnitude
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Pick represents a qualifying recommendation against one market line
type Pick struct {
	LineType    models.LineType `json:"line_type"`
	Side        models.BetSide  `json:"side"`
	Edge        float64         `json:"edge"`
	Tier        Tier            `json:"tier"`
	ModelValue  float64         `json:"model_value"`
	MarketValue float64         `json:"market_value"`
}

// Evaluator derives picks from model-vs-market disagreement
type Evaluator struct {
	cfg config.EdgeConfig
}

// NewEvaluator creates an evaluator with the given tier thresholds
func NewEvaluator(cfg config.EdgeConfig) (*Evaluator, error) {
	if !(cfg.TierA > cfg.TierB && cfg.TierB > cfg.TierC) {
		return nil, fmt.Errorf("%w: tier thresholds must be strictly descending", models.ErrInvariantViolation)
	}
	return &Evaluator{cfg: cfg}, nil
}

// EvaluateSpread compares a model spread (HMA frame) against a quoted home
// line. The quote is converted into the model frame here, at the boundary,
// so no caller ever mixes sign conventions. A nil return means no
// qualifying pick, which is a valid outcome, not an error.
//
// Positive edge means the model likes the home side more than the market
// does, so the pick is the home side; negative edge picks the away side.
func (e *Evaluator) EvaluateSpread(modelSpread float64, line *models.MarketLine) *Pick {
	if line == nil || line.LineType != models.LineTypeSpread {
		return nil
	}

	marketSpread := spread.MarketToModel(line.Value)
	edgeValue := modelSpread - marketSpread

	side := models.BetSideHome
	if edgeValue < 0 {
		side = models.BetSideAway
	}

	return e.pick(models.LineTypeSpread, side, edgeValue, modelSpread, marketSpread)
}

// EvaluateTotal compares a model total against a quoted total. Totals carry
// no side-dependent sign: positive edge picks the over.
func (e *Evaluator) EvaluateTotal(modelTotal float64, line *models.MarketLine) *Pick {
	if line == nil || line.LineType != models.LineTypeTotal {
		return nil
	}

	edgeValue := modelTotal - line.Value

	side := models.BetSideOver
	if edgeValue < 0 {
		side = models.BetSideUnder
	}

	return e.pick(models.LineTypeTotal, side, edgeValue, modelTotal, line.Value)
}

func (e *Evaluator) pick(lineType models.LineType, side models.BetSide, edgeValue, modelValue, marketValue float64) *Pick {
	tier, ok := e.tierFor(math.Abs(edgeValue))
	if !ok {
		return nil
	}
	return &Pick{
		LineType:    lineType,
		Side:        side,
		Edge:        edgeValue,
		Tier:        tier,
		ModelValue:  modelValue,
		MarketValue: marketValue,
	}
}

func (e *Evaluator) tierFor(magnitude float64) (Tier, bool) {
	switch {
	case magnitude >= e.cfg.TierA:
		return TierA, true
	case magnitude >= e.cfg.TierB:
		return TierB, true
	case magnitude >= e.cfg.TierC:
		return TierC, true
	default:
		return "", false
	}
}
