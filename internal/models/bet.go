package models

import (
	"time"

	"github.com/google/uuid"
)

// BetSide represents the side of a wager
type BetSide string

const (
	BetSideHome  BetSide = "home"
	BetSideAway  BetSide = "away"
	BetSideOver  BetSide = "over"
	BetSideUnder BetSide = "under"
)

// BetResult represents the graded outcome of a bet
type BetResult string

const (
	BetResultPending BetResult = "pending"
	BetResultWin     BetResult = "win"
	BetResultLoss    BetResult = "loss"
	BetResultPush    BetResult = "push"
)

// Bet represents a simulated or live wager tied to one game and market.
// A bet transitions exactly once, from pending to a graded result, and is
// never regraded afterwards.
type Bet struct {
	ID           uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	GameID       uuid.UUID  `db:"game_id" json:"game_id" validate:"required,uuid4"`
	LineType     LineType   `db:"line_type" json:"line_type" validate:"required,oneof=spread total moneyline"`
	Side         BetSide    `db:"side" json:"side" validate:"required,oneof=home away over under"`
	LineTaken    float64    `db:"line_taken" json:"line_taken"`
	PriceTaken   int        `db:"price_taken" json:"price_taken"`
	ModelValue   float64    `db:"model_value" json:"model_value"`
	ClosingLine  *float64   `db:"closing_line" json:"closing_line"`
	ClosingPrice *int       `db:"closing_price" json:"closing_price"`
	Stake        float64    `db:"stake" json:"stake" validate:"gt=0"`
	Result       BetResult  `db:"result" json:"result" validate:"required"`
	ProfitLoss   *float64   `db:"profit_loss" json:"profit_loss"`
	CLV          *float64   `db:"clv" json:"clv"`
	PlacedAt     time.Time  `db:"placed_at" json:"placed_at" validate:"required"`
	GradedAt     *time.Time `db:"graded_at" json:"graded_at"`
}

// IsGraded checks whether the bet has a terminal result
func (b *Bet) IsGraded() bool {
	return b.Result != BetResultPending && b.Result != ""
}

// NetPnL returns the realized profit/loss, zero while pending
func (b *Bet) NetPnL() float64 {
	if b.ProfitLoss == nil {
		return 0
	}
	return *b.ProfitLoss
}

// GetROI returns the return on investment percentage
func (b *Bet) GetROI() float64 {
	if b.Stake == 0 {
		return 0
	}
	return (b.NetPnL() / b.Stake) * 100
}
