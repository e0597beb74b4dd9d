package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// Staking methods
const (
	StakingFlat  = "flat"
	StakingKelly = "kelly"
)

// BacktestConfig extends core config with parsed backtest settings
type BacktestConfig struct {
	StartDate       time.Time
	EndDate         time.Time
	InitialBankroll float64
	Staking         string
	FlatFraction    float64
	KellyFraction   float64
	KellyCap        float64
	KellyEdgeScale  float64
	PushTolerance   float64
	DefaultPrice    int
	RiskFreeRate    float64
	OutputPath      string

	// Risk limits, zero disables
	MaxStakeFraction float64
	DrawdownStop     float64
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}
	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
	}

	bt := BacktestConfig{
		StartDate:       start,
		EndDate:         end,
		InitialBankroll: cfg.InitialBankroll,
		Staking:         cfg.Staking,
		FlatFraction:    cfg.FlatFraction,
		KellyFraction:   cfg.KellyFraction,
		KellyCap:        cfg.KellyCap,
		KellyEdgeScale:  cfg.KellyEdgeScale,
		PushTolerance:   cfg.PushTolerance,
		DefaultPrice:    cfg.DefaultPrice,
		RiskFreeRate:    cfg.RiskFreeRate,
		OutputPath:      cfg.OutputPath,

		MaxStakeFraction: cfg.MaxStakeFraction,
		DrawdownStop:     cfg.DrawdownStop,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.StartDate.After(b.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if b.InitialBankroll <= 0 {
		return fmt.Errorf("initial bankroll must be positive")
	}
	if b.Staking != StakingFlat && b.Staking != StakingKelly {
		return fmt.Errorf("staking must be %q or %q", StakingFlat, StakingKelly)
	}
	if b.FlatFraction <= 0 || b.FlatFraction > 0.25 {
		return fmt.Errorf("flat fraction must be in (0, 0.25]")
	}
	if b.KellyFraction <= 0 || b.KellyFraction > 1 {
		return fmt.Errorf("kelly fraction must be in (0, 1]")
	}
	if b.KellyCap <= 0 || b.KellyCap > 0.25 {
		return fmt.Errorf("kelly cap must be in (0, 0.25]")
	}
	if b.KellyEdgeScale <= 0 {
		return fmt.Errorf("kelly edge scale must be positive")
	}
	if b.PushTolerance <= 0 || b.PushTolerance >= 1 {
		return fmt.Errorf("push tolerance must be in (0, 1)")
	}
	if b.DefaultPrice >= 0 {
		return fmt.Errorf("default price must be a negative American price")
	}
	if b.MaxStakeFraction < 0 || b.MaxStakeFraction > 1 {
		return fmt.Errorf("max stake fraction must be in [0, 1]")
	}
	if b.DrawdownStop < 0 || b.DrawdownStop >= 1 {
		return fmt.Errorf("drawdown stop must be in [0, 1)")
	}
	return nil
}
