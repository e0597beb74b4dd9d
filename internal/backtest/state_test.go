package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func settledBet(result models.BetResult, stake, pnl float64, gradedAt time.Time) *models.Bet {
	return &models.Bet{
		ID:         uuid.New(),
		GameID:     uuid.New(),
		LineType:   models.LineTypeSpread,
		Side:       models.BetSideHome,
		LineTaken:  -3,
		PriceTaken: 100,
		Stake:      stake,
		Result:     result,
		ProfitLoss: &pnl,
		PlacedAt:   gradedAt.Add(-3 * time.Hour),
		GradedAt:   &gradedAt,
	}
}

// Ten alternating even-money bets at a flat 5% of the compounding bankroll.
// Each win/loss pair multiplies the bankroll by 1.05 * 0.95, so after five
// pairs it sits at 1000 * 0.9975^5 = 987.5623439.
func TestFlatStakeCompoundingPath(t *testing.T) {
	start := time.Date(2023, 9, 2, 18, 0, 0, 0, time.UTC)
	state := NewBacktestState(1000, start)
	staker := FlatStaker{Fraction: 0.05}

	for i := 0; i < 10; i++ {
		stake := staker.Stake(state.CurrentBankroll, 3.0)
		result, pnl := models.BetResultWin, stake
		if i%2 == 1 {
			result, pnl = models.BetResultLoss, -stake
		}
		state.UpdateState(settledBet(result, stake, pnl, start.AddDate(0, 0, 7*i)))
	}

	want := 1000 * math.Pow(1.05*0.95, 5)
	if math.Abs(state.CurrentBankroll-want) > 1e-9 {
		t.Fatalf("expected bankroll %v, got %v", want, state.CurrentBankroll)
	}
	if math.Abs(state.CurrentBankroll-987.5623439) > 1e-6 {
		t.Fatalf("expected bankroll 987.5623439, got %v", state.CurrentBankroll)
	}
	if len(state.Bets) != 10 {
		t.Fatalf("expected 10 bets recorded, got %d", len(state.Bets))
	}

	// peak is the bankroll after the first win
	if math.Abs(state.PeakBankroll-1050) > 1e-9 {
		t.Fatalf("expected peak 1050, got %v", state.PeakBankroll)
	}
}

func TestUpdateStateAggregatesDailyPnL(t *testing.T) {
	start := time.Date(2023, 10, 14, 0, 0, 0, 0, time.UTC)
	state := NewBacktestState(1000, start)

	saturday := time.Date(2023, 10, 14, 16, 0, 0, 0, time.UTC)
	state.UpdateState(settledBet(models.BetResultWin, 50, 50, saturday))
	state.UpdateState(settledBet(models.BetResultLoss, 50, -50, saturday.Add(4*time.Hour)))
	state.UpdateState(settledBet(models.BetResultWin, 50, 50, saturday.AddDate(0, 0, 1)))

	day := time.Date(2023, 10, 14, 0, 0, 0, 0, time.UTC)
	if state.DailyPnL[day] != 0 {
		t.Fatalf("expected saturday pnl 0, got %v", state.DailyPnL[day])
	}
	if state.DailyPnL[day.AddDate(0, 0, 1)] != 50 {
		t.Fatalf("expected sunday pnl 50, got %v", state.DailyPnL[day.AddDate(0, 0, 1)])
	}
}

func TestCurrentDrawdownNeverNegative(t *testing.T) {
	state := NewBacktestState(1000, time.Date(2023, 9, 2, 0, 0, 0, 0, time.UTC))
	if state.CurrentDrawdown() != 0 {
		t.Fatalf("expected zero drawdown at start, got %v", state.CurrentDrawdown())
	}

	state.CurrentBankroll = 1100
	state.PeakBankroll = 1100
	state.CurrentBankroll = 900
	if state.CurrentDrawdown() != 200 {
		t.Fatalf("expected drawdown 200, got %v", state.CurrentDrawdown())
	}
}
