package backtest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Metrics represents backtest performance metrics. HitRate excludes
// pushes from its denominator; ROI is profit over total amount staked,
// not over starting bankroll.
type Metrics struct {
	TotalBets      int       `json:"total_bets"`
	WinningBets    int       `json:"winning_bets"`
	LosingBets     int       `json:"losing_bets"`
	Pushes         int       `json:"pushes"`
	HitRate        float64   `json:"hit_rate"`
	ROI            float64   `json:"roi"`
	TotalStaked    float64   `json:"total_staked"`
	TotalPnL       float64   `json:"total_pnl"`
	FinalBankroll  float64   `json:"final_bankroll"`
	TotalReturn    float64   `json:"total_return"`
	MaxDrawdown    float64   `json:"max_drawdown"`
	MaxDrawdownPct float64   `json:"max_drawdown_pct"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	ProfitFactor   float64   `json:"profit_factor"`
	Expectancy     float64   `json:"expectancy"`
	AverageWin     float64   `json:"average_win"`
	AverageLoss    float64   `json:"average_loss"`
	AverageCLV     float64   `json:"average_clv"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// CalculateMetrics calculates metrics from backtest state
func CalculateMetrics(state *BacktestState, cfg BacktestConfig) Metrics {
	metrics := Metrics{
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
	}

	if state == nil {
		return metrics
	}

	metrics.FinalBankroll = state.CurrentBankroll
	if state.InitialBankroll > 0 {
		metrics.TotalReturn = (state.CurrentBankroll - state.InitialBankroll) / state.InitialBankroll
	}

	metrics.MaxDrawdown, metrics.MaxDrawdownPct = state.EquityCurve.MaxDrawdown()
	metrics.SharpeRatio = calculateSharpeRatio(state.EquityCurve.GetReturns(), cfg.RiskFreeRate)

	metrics.TotalBets = len(state.Bets)
	for _, bet := range state.Bets {
		metrics.TotalStaked += bet.Stake
		metrics.TotalPnL += bet.NetPnL()
		switch bet.Result {
		case models.BetResultWin:
			metrics.WinningBets++
			metrics.AverageWin += bet.NetPnL()
		case models.BetResultLoss:
			metrics.LosingBets++
			metrics.AverageLoss += bet.NetPnL()
		case models.BetResultPush:
			metrics.Pushes++
		}
		if bet.CLV != nil {
			metrics.AverageCLV += *bet.CLV
		}
	}

	if metrics.WinningBets > 0 {
		metrics.AverageWin /= float64(metrics.WinningBets)
	}
	if metrics.LosingBets > 0 {
		metrics.AverageLoss /= float64(metrics.LosingBets)
	}
	if metrics.TotalBets > 0 {
		metrics.AverageCLV /= float64(metrics.TotalBets)
		metrics.Expectancy = metrics.TotalPnL / float64(metrics.TotalBets)
	}

	resolved := metrics.WinningBets + metrics.LosingBets
	if resolved > 0 {
		metrics.HitRate = float64(metrics.WinningBets) / float64(resolved)
	}
	if metrics.TotalStaked > 0 {
		metrics.ROI = metrics.TotalPnL / metrics.TotalStaked
	}
	metrics.ProfitFactor = calculateProfitFactor(state.Bets)

	return metrics
}

// ToJSON exports metrics to JSON
func (m Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// ToModel converts metrics into a persistable run summary
func (m Metrics) ToModel(modelVersion string) *models.BacktestResult {
	return &models.BacktestResult{
		ID:            uuid.New(),
		ModelVersion:  modelVersion,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		TotalBets:     m.TotalBets,
		WinningBets:   m.WinningBets,
		LosingBets:    m.LosingBets,
		Pushes:        m.Pushes,
		HitRate:       m.HitRate,
		ROI:           m.ROI,
		TotalStaked:   m.TotalStaked,
		TotalPnL:      m.TotalPnL,
		MaxDrawdown:   m.MaxDrawdown,
		AverageCLV:    m.AverageCLV,
		FinalBankroll: m.FinalBankroll,
		MetricsJSON:   json.RawMessage(m.ToJSON()),
		CreatedAt:     time.Now().UTC(),
	}
}

func calculateSharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := average(returns)
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	return (mean - riskFreeRate/252.0) / std * math.Sqrt(252)
}

func calculateProfitFactor(bets []*models.Bet) float64 {
	grossProfit := 0.0
	grossLoss := 0.0
	for _, bet := range bets {
		pnl := bet.NetPnL()
		if pnl > 0 {
			grossProfit += pnl
		} else {
			grossLoss += math.Abs(pnl)
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 999
		}
		return 0
	}
	return grossProfit / grossLoss
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
