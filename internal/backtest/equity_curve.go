package backtest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// EquityPoint represents a point in the equity curve. Drawdown is recorded
// in currency units, not a fraction of peak.
type EquityPoint struct {
	Time     time.Time `json:"time"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
}

// EquityCurve represents a time-series of equity points
type EquityCurve []EquityPoint

// GetReturns calculates periodic returns from equity curve
func (e EquityCurve) GetReturns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Value
		curr := e[i].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (curr-prev)/prev)
	}
	return returns
}

// MaxDrawdown returns the worst peak-to-trough distance along the curve
// in currency units, plus the same distance as a fraction of the peak it
// fell from.
func (e EquityCurve) MaxDrawdown() (float64, float64) {
	maxDD := 0.0
	maxDDPct := 0.0
	peak := 0.0
	for _, p := range e {
		if p.Value > peak {
			peak = p.Value
		}
		if peak == 0 {
			continue
		}
		drawdown := peak - p.Value
		if drawdown > maxDD {
			maxDD = drawdown
			maxDDPct = drawdown / peak
		}
	}
	return maxDD, maxDDPct
}

// GetVolatility calculates standard deviation of returns
func (e EquityCurve) GetVolatility() float64 {
	returns := e.GetReturns()
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("time,value,drawdown\n")
	for _, point := range e {
		buf.WriteString(point.Time.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
