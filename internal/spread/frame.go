// Package spread implements spread projection and the sign-convention
// conversions between the model frame and the market quote frame.
//
// The model frame is home-minus-away (HMA): positive means the home team is
// favored by that many points. Books quote the opposite convention - a home
// favorite carries a negative handicap. Every crossing between the two
// frames goes through this file; no call site converts signs inline.
package spread

import "github.com/yourusername/gridiron-edge/internal/models"

// ModelToMarket converts an HMA-frame spread to a book-style home line.
// Home favored by 6.5 in the model frame quotes as -6.5.
func ModelToMarket(modelSpread float64) float64 {
	return -modelSpread
}

// MarketToModel converts a book-style home line to the HMA frame
func MarketToModel(homeLine float64) float64 {
	return -homeLine
}

// SideMargin returns the final margin from the perspective of a bet side.
// The home side sees the home-minus-away margin; the away side sees its
// negation. Totals sides pass the total through unchanged.
func SideMargin(side models.BetSide, homeMargin float64) float64 {
	if side == models.BetSideAway {
		return -homeMargin
	}
	return homeMargin
}

// SideLine returns the handicap a bet side receives from a home line
func SideLine(side models.BetSide, homeLine float64) float64 {
	if side == models.BetSideAway {
		return -homeLine
	}
	return homeLine
}

// SideQuote maps a quoted line (home line for spreads, posted number for
// totals) into a per-side handicap where larger is always better for the
// bettor. Spread sides take the line as a handicap added to their margin;
// totals sides treat the posted number as a threshold, so the over prefers
// a lower number and the under a higher one.
func SideQuote(lineType models.LineType, side models.BetSide, quoted float64) float64 {
	switch lineType {
	case models.LineTypeTotal:
		if side == models.BetSideOver {
			return -quoted
		}
		return quoted
	default:
		return SideLine(side, quoted)
	}
}

// SideResult returns the game outcome a side is graded against: the signed
// margin for spread sides, and the combined score (negated for the under,
// matching the SideQuote orientation) for totals sides.
func SideResult(lineType models.LineType, side models.BetSide, homeMargin, totalPoints float64) float64 {
	switch lineType {
	case models.LineTypeTotal:
		if side == models.BetSideUnder {
			return -totalPoints
		}
		return totalPoints
	default:
		return SideMargin(side, homeMargin)
	}
}

// CoverDiff is the graded outcome relative to the number taken: positive
// covers, negative loses, and a magnitude inside the push tolerance lands
// on the line.
func CoverDiff(lineType models.LineType, side models.BetSide, quoted, homeMargin, totalPoints float64) float64 {
	return SideResult(lineType, side, homeMargin, totalPoints) + SideQuote(lineType, side, quoted)
}

// ClosingLineValue measures line movement in the bettor's favor: the
// handicap taken minus the handicap at close, both in the per-side frame,
// so positive always means the bettor beat the close.
func ClosingLineValue(lineType models.LineType, side models.BetSide, taken, closing float64) float64 {
	return SideQuote(lineType, side, taken) - SideQuote(lineType, side, closing)
}
