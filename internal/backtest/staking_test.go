package backtest

import "testing"

func TestFlatStakerIgnoresEdge(t *testing.T) {
	staker := FlatStaker{Fraction: 0.05}
	small := staker.Stake(1000, 2.1)
	large := staker.Stake(1000, 6.5)
	if small != 50 || large != 50 {
		t.Errorf("flat stakes = %v, %v, want both 50", small, large)
	}
}

func TestFlatStakerZeroBankroll(t *testing.T) {
	staker := FlatStaker{Fraction: 0.05}
	if got := staker.Stake(0, 3); got != 0 {
		t.Errorf("stake on empty bankroll = %v, want 0", got)
	}
}

func TestKellyStakerScalesWithEdge(t *testing.T) {
	staker := KellyStaker{Fraction: 0.25, Cap: 0.25, EdgeScale: 10}
	// edge 4 on scale 10 with quarter kelly: 4/10 * 0.25 = 10% of bankroll
	if got := staker.Stake(1000, 4); got != 100 {
		t.Errorf("stake = %v, want 100", got)
	}
	// negative edge stakes the same magnitude
	if got := staker.Stake(1000, -4); got != 100 {
		t.Errorf("stake for away edge = %v, want 100", got)
	}
	// half the edge stakes half the fraction
	if got := staker.Stake(1000, 2); got != 50 {
		t.Errorf("stake for half edge = %v, want 50", got)
	}
}

func TestKellyStakerCapsOutlierEdges(t *testing.T) {
	staker := KellyStaker{Fraction: 0.5, Cap: 0.05, EdgeScale: 2}
	// uncapped fraction would be 20/2 * 0.5 = 5x bankroll
	if got := staker.Stake(1000, 20); got != 50 {
		t.Errorf("capped stake = %v, want 50", got)
	}
}

func TestNewStakerSelectsByConfig(t *testing.T) {
	flatCfg := BacktestConfig{Staking: StakingFlat, FlatFraction: 0.05}
	if _, ok := NewStaker(flatCfg).(FlatStaker); !ok {
		t.Error("expected flat staker")
	}

	kellyCfg := BacktestConfig{Staking: StakingKelly, KellyFraction: 0.25, KellyCap: 0.05, KellyEdgeScale: 10}
	if _, ok := NewStaker(kellyCfg).(KellyStaker); !ok {
		t.Error("expected kelly staker")
	}
}
