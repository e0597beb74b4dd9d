package backtest

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"github.com/yourusername/gridiron-edge/internal/market"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// MonteCarloConfig configures the bootstrap resampling run
type MonteCarloConfig struct {
	Iterations      int
	Seed            int64
	InitialBankroll float64
}

// MonteCarloResult represents resampled bankroll outcomes
type MonteCarloResult struct {
	Iterations          int     `json:"iterations"`
	MeanReturn          float64 `json:"mean_return"`
	StdReturn           float64 `json:"std_return"`
	VaR95               float64 `json:"var_95"`
	VaR99               float64 `json:"var_99"`
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
	ProbabilityOfRuin   float64 `json:"probability_of_ruin"`
}

// RunMonteCarlo resamples the bet slate to estimate how much of the
// observed result is luck. Each bet's win probability comes from the
// vig-free implied probability of the price taken, so the simulation
// assumes the market was right and asks how the staking plan fares.
func RunMonteCarlo(bets []*models.Bet, cfg MonteCarloConfig) MonteCarloResult {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	distribution := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		bankroll := cfg.InitialBankroll
		for _, bet := range bets {
			if bet.Result == models.BetResultPush {
				continue
			}
			prob := market.ImpliedProbability(bet.PriceTaken)
			if prob <= 0 {
				prob = 0.5
			}
			if rng.Float64() < prob {
				bankroll += market.Payout(bet.PriceTaken, bet.Stake)
			} else {
				bankroll -= bet.Stake
			}
			if bankroll <= 0 {
				bankroll = 0
				break
			}
		}
		distribution[i] = bankroll
	}

	mean, std := meanStd(distribution)
	result := MonteCarloResult{
		Iterations:          cfg.Iterations,
		ProbabilityOfProfit: probabilityAbove(distribution, cfg.InitialBankroll),
		ProbabilityOfRuin:   probabilityAtOrBelow(distribution, 0),
	}
	if cfg.InitialBankroll > 0 {
		result.MeanReturn = (mean - cfg.InitialBankroll) / cfg.InitialBankroll
		result.StdReturn = std / cfg.InitialBankroll
		result.VaR95 = (percentile(distribution, 0.05) - cfg.InitialBankroll) / cfg.InitialBankroll
		result.VaR99 = (percentile(distribution, 0.01) - cfg.InitialBankroll) / cfg.InitialBankroll
	}

	return result
}

// ToJSON exports the result for reporting
func (m MonteCarloResult) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sortFloats(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityAtOrBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func sortFloats(values []float64) {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if values[j] < values[i] {
				values[i], values[j] = values[j], values[i]
			}
		}
	}
}
