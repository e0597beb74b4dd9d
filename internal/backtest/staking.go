package backtest

import "math"

// Staker sizes a bet from the current bankroll and the pick's edge
type Staker interface {
	Stake(bankroll, edge float64) float64
}

// FlatStaker bets a fixed fraction of the current bankroll regardless of
// edge size.
type FlatStaker struct {
	Fraction float64
}

// Stake returns the flat stake for the current bankroll
func (s FlatStaker) Stake(bankroll, edge float64) float64 {
	if bankroll <= 0 {
		return 0
	}
	return bankroll * s.Fraction
}

// KellyStaker scales the bet with edge magnitude: the edge in points is
// mapped to a bankroll fraction through EdgeScale, multiplied down by the
// Kelly fraction, and hard-capped so a single outlier edge cannot sink
// the bankroll.
type KellyStaker struct {
	Fraction  float64
	Cap       float64
	EdgeScale float64
}

// Stake returns the fractional-Kelly stake for an edge
func (s KellyStaker) Stake(bankroll, edge float64) float64 {
	if bankroll <= 0 {
		return 0
	}
	fraction := math.Abs(edge) / s.EdgeScale * s.Fraction
	if fraction > s.Cap {
		fraction = s.Cap
	}
	return bankroll * fraction
}

// NewStaker builds the staker named by the config
func NewStaker(cfg BacktestConfig) Staker {
	if cfg.Staking == StakingKelly {
		return KellyStaker{
			Fraction:  cfg.KellyFraction,
			Cap:       cfg.KellyCap,
			EdgeScale: cfg.KellyEdgeScale,
		}
	}
	return FlatStaker{Fraction: cfg.FlatFraction}
}
