package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BacktestResult represents a persisted summary of one backtest run
type BacktestResult struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	ModelVersion    string          `db:"model_version" json:"model_version" validate:"required"`
	StartDate       time.Time       `db:"start_date" json:"start_date"`
	EndDate         time.Time       `db:"end_date" json:"end_date"`
	TotalBets       int             `db:"total_bets" json:"total_bets"`
	WinningBets     int             `db:"winning_bets" json:"winning_bets"`
	LosingBets      int             `db:"losing_bets" json:"losing_bets"`
	Pushes          int             `db:"pushes" json:"pushes"`
	HitRate         float64         `db:"hit_rate" json:"hit_rate"`
	ROI             float64         `db:"roi" json:"roi"`
	TotalStaked     float64         `db:"total_staked" json:"total_staked"`
	TotalPnL        float64         `db:"total_pnl" json:"total_pnl"`
	MaxDrawdown     float64         `db:"max_drawdown" json:"max_drawdown"`
	AverageCLV      float64         `db:"average_clv" json:"average_clv"`
	FinalBankroll   float64         `db:"final_bankroll" json:"final_bankroll"`
	MetricsJSON     json.RawMessage `db:"metrics_json" json:"metrics_json,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
