package backtest

import (
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// BacktestState tracks the bankroll path through a replay
type BacktestState struct {
	InitialBankroll float64
	CurrentBankroll float64
	PeakBankroll    float64
	Bets            []*models.Bet
	EquityCurve     EquityCurve
	DailyPnL        map[time.Time]float64
}

// NewBacktestState initializes backtest state
func NewBacktestState(initialBankroll float64, start time.Time) *BacktestState {
	state := &BacktestState{
		InitialBankroll: initialBankroll,
		CurrentBankroll: initialBankroll,
		PeakBankroll:    initialBankroll,
		Bets:            []*models.Bet{},
		EquityCurve:     EquityCurve{},
		DailyPnL:        make(map[time.Time]float64),
	}
	state.RecordEquityPoint(start, initialBankroll)
	return state
}

// UpdateState applies a graded bet to the compounding bankroll
func (s *BacktestState) UpdateState(bet *models.Bet) {
	pnl := bet.NetPnL()
	s.CurrentBankroll += pnl
	if s.CurrentBankroll > s.PeakBankroll {
		s.PeakBankroll = s.CurrentBankroll
	}
	s.Bets = append(s.Bets, bet)

	if bet.GradedAt != nil {
		day := time.Date(bet.GradedAt.Year(), bet.GradedAt.Month(), bet.GradedAt.Day(), 0, 0, 0, 0, time.UTC)
		s.DailyPnL[day] += pnl
	}
}

// CurrentDrawdown returns the open peak-to-current drawdown in currency
// units, never negative.
func (s *BacktestState) CurrentDrawdown() float64 {
	drawdown := s.PeakBankroll - s.CurrentBankroll
	if drawdown < 0 {
		return 0
	}
	return drawdown
}

// RecordEquityPoint adds an equity point to the curve
func (s *BacktestState) RecordEquityPoint(t time.Time, value float64) {
	drawdown := 0.0
	if value < s.PeakBankroll {
		drawdown = s.PeakBankroll - value
	}

	s.EquityCurve = append(s.EquityCurve, EquityPoint{
		Time:     t,
		Value:    value,
		Drawdown: drawdown,
	})
}
