// Package market normalizes market quotes: American odds arithmetic,
// spread string parsing, and vig removal. All money math runs on
// shopspring/decimal and is rounded once, at the boundary back to float64,
// so repeated payout calculations cannot accumulate binary float drift.
package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Payout returns the winning profit (excluding returned stake) for an
// American-odds price. Negative odds lay |odds| to win 100; positive odds
// win odds per 100 staked.
func Payout(price int, stake float64) float64 {
	if price == 0 || stake <= 0 {
		return 0
	}
	st := decimal.NewFromFloat(stake)
	var profit decimal.Decimal
	if price < 0 {
		profit = st.Mul(hundred).Div(decimal.NewFromInt(int64(-price)))
	} else {
		profit = st.Mul(decimal.NewFromInt(int64(price))).Div(hundred)
	}
	result, _ := profit.Round(2).Float64()
	return result
}

// ImpliedProbability converts an American price to its implied win
// probability, vig included.
func ImpliedProbability(price int) float64 {
	if price == 0 {
		return 0
	}
	var p decimal.Decimal
	if price < 0 {
		abs := decimal.NewFromInt(int64(-price))
		p = abs.Div(abs.Add(hundred))
	} else {
		pos := decimal.NewFromInt(int64(price))
		p = hundred.Div(pos.Add(hundred))
	}
	result, _ := p.Round(6).Float64()
	return result
}

// RemoveVig rescales two implied probabilities to sum to one
func RemoveVig(pA, pB float64) (float64, float64) {
	total := pA + pB
	if total <= 0 {
		return 0, 0
	}
	return pA / total, pB / total
}

// DecimalOdds converts an American price to European decimal odds
func DecimalOdds(price int) float64 {
	if price == 0 {
		return 0
	}
	var d decimal.Decimal
	if price < 0 {
		d = hundred.Div(decimal.NewFromInt(int64(-price))).Add(decimal.NewFromInt(1))
	} else {
		d = decimal.NewFromInt(int64(price)).Div(hundred).Add(decimal.NewFromInt(1))
	}
	result, _ := d.Round(4).Float64()
	return result
}

// ParseSpread parses a book spread quote ("-6.5", "+3", "PK") into the
// home-line value. "PK" and "EV" mean pick-em, a zero line.
func ParseSpread(quote string) (float64, error) {
	trimmed := strings.TrimSpace(strings.ToUpper(quote))
	if trimmed == "" {
		return 0, fmt.Errorf("empty spread quote")
	}
	if trimmed == "PK" || trimmed == "EV" || trimmed == "PICK" {
		return 0, nil
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(trimmed, "+"))
	if err != nil {
		return 0, fmt.Errorf("unparseable spread quote %q: %w", quote, err)
	}
	value, _ := d.Float64()
	return value, nil
}
