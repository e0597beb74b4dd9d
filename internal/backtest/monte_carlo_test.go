package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func mcBet(price int, stake float64) *models.Bet {
	return &models.Bet{
		ID:         uuid.New(),
		GameID:     uuid.New(),
		LineType:   models.LineTypeSpread,
		Side:       models.BetSideHome,
		PriceTaken: price,
		Stake:      stake,
		Result:     models.BetResultWin,
		PlacedAt:   time.Now().UTC(),
	}
}

func TestRunMonteCarloIsDeterministicForSeed(t *testing.T) {
	bets := []*models.Bet{mcBet(-110, 50), mcBet(-110, 50), mcBet(150, 25)}
	cfg := MonteCarloConfig{Iterations: 500, Seed: 42, InitialBankroll: 1000}

	first := RunMonteCarlo(bets, cfg)
	second := RunMonteCarlo(bets, cfg)
	if first.MeanReturn != second.MeanReturn || first.VaR95 != second.VaR95 {
		t.Error("same seed must reproduce the same distribution")
	}
}

func TestRunMonteCarloSmallStakesNeverRuin(t *testing.T) {
	bets := make([]*models.Bet, 20)
	for i := range bets {
		bets[i] = mcBet(-110, 10)
	}
	result := RunMonteCarlo(bets, MonteCarloConfig{Iterations: 300, Seed: 7, InitialBankroll: 10000})

	if result.ProbabilityOfRuin != 0 {
		t.Errorf("ruin probability = %v, want 0 for 0.1%% stakes", result.ProbabilityOfRuin)
	}
	if math.IsNaN(result.MeanReturn) || math.IsNaN(result.StdReturn) {
		t.Error("expected finite return statistics")
	}
}

func TestRunMonteCarloSkipsPushes(t *testing.T) {
	push := mcBet(-110, 1000)
	push.Result = models.BetResultPush
	result := RunMonteCarlo([]*models.Bet{push}, MonteCarloConfig{Iterations: 100, Seed: 3, InitialBankroll: 1000})

	if result.MeanReturn != 0 {
		t.Errorf("pushed bets must not move the bankroll, mean return = %v", result.MeanReturn)
	}
}

func TestRunMonteCarloDefaultsIterations(t *testing.T) {
	result := RunMonteCarlo(nil, MonteCarloConfig{Seed: 1, InitialBankroll: 1000})
	if result.Iterations != 1000 {
		t.Errorf("iterations = %d, want default 1000", result.Iterations)
	}
}
