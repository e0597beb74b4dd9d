package backtest

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RiskSnapshot reports the current risk posture of a replay
type RiskSnapshot struct {
	CurrentDrawdown  float64   `json:"current_drawdown"`
	DrawdownFraction float64   `json:"drawdown_fraction"`
	MaxStakeFraction float64   `json:"max_stake_fraction"`
	DrawdownStop     float64   `json:"drawdown_stop"`
	Halted           bool      `json:"halted"`
	LastUpdate       time.Time `json:"last_update"`
}

// RiskLimits enforces per-bet stake caps and a run-level drawdown stop.
// Once the drawdown stop trips the replay stops placing bets permanently;
// a real bankroll that deep underwater would be pulled from play, and a
// model that keeps betting through it overstates its recoverability.
type RiskLimits struct {
	maxStakeFraction float64
	drawdownStop     float64
	halted           bool
	logger           *logrus.Logger
}

// NewRiskLimits creates risk limits from backtest config. A zero value for
// either control disables it.
func NewRiskLimits(cfg BacktestConfig, logger *logrus.Logger) *RiskLimits {
	if logger == nil {
		logger = logrus.New()
	}
	return &RiskLimits{
		maxStakeFraction: cfg.MaxStakeFraction,
		drawdownStop:     cfg.DrawdownStop,
		logger:           logger,
	}
}

// ClampStake caps a proposed stake at the configured fraction of the
// current bankroll
func (rl *RiskLimits) ClampStake(bankroll, stake float64) float64 {
	if rl.maxStakeFraction <= 0 || bankroll <= 0 {
		return stake
	}
	maxStake := bankroll * rl.maxStakeFraction
	if stake > maxStake {
		rl.logger.WithFields(logrus.Fields{
			"proposed_stake": stake,
			"max_stake":      maxStake,
		}).Debug("Stake capped at maximum fraction of bankroll")
		return maxStake
	}
	return stake
}

// AllowBet reports whether the replay may still place bets. It trips the
// drawdown stop when the open drawdown exceeds the configured fraction of
// the peak bankroll, and stays tripped for the rest of the run.
func (rl *RiskLimits) AllowBet(state *BacktestState) bool {
	if rl.halted {
		return false
	}
	if rl.drawdownStop <= 0 || state == nil || state.PeakBankroll <= 0 {
		return true
	}

	fraction := state.CurrentDrawdown() / state.PeakBankroll
	if fraction >= rl.drawdownStop {
		rl.halted = true
		rl.logger.WithFields(logrus.Fields{
			"drawdown":          state.CurrentDrawdown(),
			"drawdown_fraction": fraction,
			"drawdown_stop":     rl.drawdownStop,
			"peak_bankroll":     state.PeakBankroll,
		}).Warn("Drawdown stop tripped, halting bet placement")
		return false
	}
	return true
}

// Halted reports whether the drawdown stop has tripped
func (rl *RiskLimits) Halted() bool {
	return rl.halted
}

// Snapshot returns current risk metrics for reporting
func (rl *RiskLimits) Snapshot(state *BacktestState) RiskSnapshot {
	snap := RiskSnapshot{
		MaxStakeFraction: rl.maxStakeFraction,
		DrawdownStop:     rl.drawdownStop,
		Halted:           rl.halted,
		LastUpdate:       time.Now().UTC(),
	}
	if state != nil && state.PeakBankroll > 0 {
		snap.CurrentDrawdown = state.CurrentDrawdown()
		snap.DrawdownFraction = state.CurrentDrawdown() / state.PeakBankroll
	}
	return snap
}
