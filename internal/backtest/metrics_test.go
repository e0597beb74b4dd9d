package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func gradedBet(result models.BetResult, stake, pnl, clv float64, gradedAt time.Time) *models.Bet {
	return &models.Bet{
		ID:         uuid.New(),
		GameID:     uuid.New(),
		LineType:   models.LineTypeSpread,
		Side:       models.BetSideHome,
		Stake:      stake,
		Result:     result,
		ProfitLoss: &pnl,
		CLV:        &clv,
		PlacedAt:   gradedAt.Add(-24 * time.Hour),
		GradedAt:   &gradedAt,
	}
}

// Five even-money bets: win, loss, push, loss, win. The bankroll path is
// 1000 -> 1100 -> 1000 -> 1000 -> 900 -> 1000, so the worst peak-to-trough
// distance is 200 off the 1100 peak.
func TestCalculateMetricsHandComputedSequence(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	state := NewBacktestState(1000, start)

	outcomes := []struct {
		result models.BetResult
		pnl    float64
	}{
		{models.BetResultWin, 100},
		{models.BetResultLoss, -100},
		{models.BetResultPush, 0},
		{models.BetResultLoss, -100},
		{models.BetResultWin, 100},
	}
	for i, o := range outcomes {
		gradedAt := start.Add(time.Duration(i) * 24 * time.Hour)
		state.UpdateState(gradedBet(o.result, 100, o.pnl, 0.5, gradedAt))
		state.RecordEquityPoint(gradedAt, state.CurrentBankroll)
	}

	cfg := BacktestConfig{StartDate: start, EndDate: start.Add(5 * 24 * time.Hour)}
	metrics := CalculateMetrics(state, cfg)

	if metrics.TotalBets != 5 || metrics.WinningBets != 2 || metrics.LosingBets != 2 || metrics.Pushes != 1 {
		t.Fatalf("record = %d (%d-%d-%d), want 5 (2-2-1)",
			metrics.TotalBets, metrics.WinningBets, metrics.LosingBets, metrics.Pushes)
	}
	// pushes stay out of the hit rate denominator
	if metrics.HitRate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", metrics.HitRate)
	}
	if metrics.TotalStaked != 500 || metrics.TotalPnL != 0 {
		t.Errorf("staked %v pnl %v, want 500 and 0", metrics.TotalStaked, metrics.TotalPnL)
	}
	if metrics.ROI != 0 {
		t.Errorf("roi = %v, want 0", metrics.ROI)
	}
	if metrics.MaxDrawdown != 200 {
		t.Errorf("max drawdown = %v, want 200", metrics.MaxDrawdown)
	}
	if math.Abs(metrics.MaxDrawdownPct-200.0/1100.0) > 1e-9 {
		t.Errorf("max drawdown pct = %v, want %v", metrics.MaxDrawdownPct, 200.0/1100.0)
	}
	if metrics.FinalBankroll != 1000 {
		t.Errorf("final bankroll = %v, want 1000", metrics.FinalBankroll)
	}
	if metrics.AverageCLV != 0.5 {
		t.Errorf("average clv = %v, want 0.5", metrics.AverageCLV)
	}
	if metrics.Expectancy != 0 {
		t.Errorf("expectancy = %v, want 0", metrics.Expectancy)
	}
	if metrics.ProfitFactor != 1 {
		t.Errorf("profit factor = %v, want 1", metrics.ProfitFactor)
	}
}

func TestCalculateMetricsROIUsesStakedNotBankroll(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	state := NewBacktestState(10000, start)
	gradedAt := start.Add(24 * time.Hour)
	state.UpdateState(gradedBet(models.BetResultWin, 200, 100, 0, gradedAt))
	state.RecordEquityPoint(gradedAt, state.CurrentBankroll)

	metrics := CalculateMetrics(state, BacktestConfig{StartDate: start, EndDate: gradedAt})
	if metrics.ROI != 0.5 {
		t.Errorf("roi = %v, want 0.5 (100 profit on 200 staked)", metrics.ROI)
	}
}

func TestCalculateMetricsEmptyState(t *testing.T) {
	metrics := CalculateMetrics(nil, BacktestConfig{})
	if metrics.TotalBets != 0 || metrics.HitRate != 0 || metrics.ROI != 0 {
		t.Error("nil state must produce zeroed metrics")
	}
}

func TestToModelCarriesRunSummary(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	state := NewBacktestState(1000, start)
	gradedAt := start.Add(24 * time.Hour)
	state.UpdateState(gradedBet(models.BetResultWin, 100, 90.91, 1.5, gradedAt))
	state.RecordEquityPoint(gradedAt, state.CurrentBankroll)

	metrics := CalculateMetrics(state, BacktestConfig{StartDate: start, EndDate: gradedAt})
	result := metrics.ToModel("v2.1")

	if result.ModelVersion != "v2.1" {
		t.Errorf("model version = %s, want v2.1", result.ModelVersion)
	}
	if result.TotalBets != 1 || result.WinningBets != 1 {
		t.Error("run summary must carry the bet record")
	}
	if result.FinalBankroll != 1090.91 {
		t.Errorf("final bankroll = %v, want 1090.91", result.FinalBankroll)
	}
	if len(result.MetricsJSON) == 0 {
		t.Error("expected full metrics payload attached")
	}
}

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, 0.02, -0.01, 0.03}
	sharpe := calculateSharpeRatio(returns, 0)
	if sharpe == 0 {
		t.Fatalf("expected non-zero sharpe ratio")
	}
}

func TestMaxDrawdownOnMonotonicCurve(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	curve := EquityCurve{
		{Time: start, Value: 1000},
		{Time: start.Add(time.Hour), Value: 1100},
		{Time: start.Add(2 * time.Hour), Value: 1250},
	}
	dd, ddPct := curve.MaxDrawdown()
	if dd != 0 || ddPct != 0 {
		t.Errorf("drawdown on rising curve = %v (%v), want 0", dd, ddPct)
	}
}
