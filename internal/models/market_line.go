package models

import (
	"time"

	"github.com/google/uuid"
)

// LineType represents the market a line is quoted for
type LineType string

const (
	LineTypeSpread    LineType = "spread"
	LineTypeTotal     LineType = "total"
	LineTypeMoneyline LineType = "moneyline"
)

// MarketLine represents a timestamped quote from one book for one market.
// Rows are append-only; a new quote is a new row.
type MarketLine struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID    uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Book      string    `db:"book" json:"book" validate:"required"`
	LineType  LineType  `db:"line_type" json:"line_type" validate:"required,oneof=spread total moneyline"`
	Value     float64   `db:"value" json:"value"`
	HomePrice *int      `db:"home_price" json:"home_price"`
	AwayPrice *int      `db:"away_price" json:"away_price"`
	QuotedAt  time.Time `db:"quoted_at" json:"quoted_at" validate:"required"`
}

// PriceForSide returns the American price quoted for a bet side, defaulting
// to standard -110 juice when the book did not publish one.
func (m *MarketLine) PriceForSide(side BetSide) int {
	switch side {
	case BetSideHome, BetSideOver:
		if m.HomePrice != nil {
			return *m.HomePrice
		}
	case BetSideAway, BetSideUnder:
		if m.AwayPrice != nil {
			return *m.AwayPrice
		}
	}
	return -110
}
