package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats metrics for terminal output
func GenerateConsoleReport(metrics Metrics) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Window: %s to %s\n",
		metrics.StartDate.Format("2006-01-02"), metrics.EndDate.Format("2006-01-02")))
	builder.WriteString(fmt.Sprintf("Bets: %d (%d-%d-%d)\n",
		metrics.TotalBets, metrics.WinningBets, metrics.LosingBets, metrics.Pushes))
	builder.WriteString(fmt.Sprintf("Hit Rate: %.2f%%\n", metrics.HitRate*100))
	builder.WriteString(fmt.Sprintf("ROI: %.2f%%\n", metrics.ROI*100))
	builder.WriteString(fmt.Sprintf("Total PnL: %.2f\n", metrics.TotalPnL))
	builder.WriteString(fmt.Sprintf("Final Bankroll: %.2f\n", metrics.FinalBankroll))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f (%.2f%%)\n", metrics.MaxDrawdown, metrics.MaxDrawdownPct*100))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", metrics.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", metrics.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Average CLV: %.3f\n", metrics.AverageCLV))
	return builder.String()
}

// WriteJSONReport writes the full metrics payload to disk
func WriteJSONReport(metrics Metrics, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(metrics.ToJSON()), 0o644)
}

// WriteCSVExport exports key metrics for spreadsheets
func WriteCSVExport(metrics Metrics, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("total_bets,%d\n", metrics.TotalBets) +
		fmt.Sprintf("hit_rate,%.4f\n", metrics.HitRate) +
		fmt.Sprintf("roi,%.4f\n", metrics.ROI) +
		fmt.Sprintf("total_pnl,%.4f\n", metrics.TotalPnL) +
		fmt.Sprintf("final_bankroll,%.4f\n", metrics.FinalBankroll) +
		fmt.Sprintf("max_drawdown,%.4f\n", metrics.MaxDrawdown) +
		fmt.Sprintf("max_drawdown_pct,%.4f\n", metrics.MaxDrawdownPct) +
		fmt.Sprintf("sharpe_ratio,%.4f\n", metrics.SharpeRatio) +
		fmt.Sprintf("profit_factor,%.4f\n", metrics.ProfitFactor) +
		fmt.Sprintf("average_clv,%.4f\n", metrics.AverageCLV)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}

// WriteEquityCurve exports the equity curve alongside the metrics files
func WriteEquityCurve(curve EquityCurve, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(curve.ToCSV()), 0o644)
}
