package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/gridiron-edge/internal/market"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

// Grader settles bets against final scores. Grading is a one-way
// transition: a bet that already carries a result is left untouched.
type Grader struct {
	PushTolerance float64
}

// NewGrader creates a grader with the configured push tolerance
func NewGrader(pushTolerance float64) Grader {
	return Grader{PushTolerance: pushTolerance}
}

// Grade settles one bet against a final game, writing result, profit/loss,
// closing line value, and the graded timestamp onto the bet. Spread and
// total bets settle against the closing number, the market's last word on
// the game; a nil closing line falls back to the number taken, which also
// zeroes CLV rather than guessing at movement.
func (g Grader) Grade(bet *models.Bet, game *models.Game, closing *models.MarketLine) error {
	if bet == nil || game == nil {
		return fmt.Errorf("bet and game are required")
	}
	if bet.IsGraded() {
		return nil
	}
	if !game.IsFinal() {
		return fmt.Errorf("cannot grade bet %s: game %s is not final", bet.ID, game.ID)
	}

	result := g.resolve(bet, game, closing)

	pnl := 0.0
	switch result {
	case models.BetResultWin:
		pnl = market.Payout(bet.PriceTaken, bet.Stake)
	case models.BetResultLoss:
		pnl = -bet.Stake
	}

	g.applyClosing(bet, closing)

	now := time.Now().UTC()
	bet.Result = result
	bet.ProfitLoss = &pnl
	bet.GradedAt = &now

	return nil
}

func (g Grader) resolve(bet *models.Bet, game *models.Game, closing *models.MarketLine) models.BetResult {
	if bet.LineType == models.LineTypeMoneyline {
		return g.resolveMoneyline(bet, game)
	}

	line := bet.LineTaken
	if closing != nil {
		line = closing.Value
	}

	diff := spread.CoverDiff(bet.LineType, bet.Side, line, game.Margin(), game.TotalPoints())
	switch {
	case math.Abs(diff) < g.PushTolerance:
		return models.BetResultPush
	case diff > 0:
		return models.BetResultWin
	default:
		return models.BetResultLoss
	}
}

// Moneyline bets ignore the line value entirely: the winner of the game
// wins the bet, and a tie pushes.
func (g Grader) resolveMoneyline(bet *models.Bet, game *models.Game) models.BetResult {
	margin := spread.SideMargin(bet.Side, game.Margin())
	switch {
	case margin > 0:
		return models.BetResultWin
	case margin < 0:
		return models.BetResultLoss
	default:
		return models.BetResultPush
	}
}

func (g Grader) applyClosing(bet *models.Bet, closing *models.MarketLine) {
	if closing == nil {
		line := bet.LineTaken
		price := bet.PriceTaken
		clv := 0.0
		bet.ClosingLine = &line
		bet.ClosingPrice = &price
		bet.CLV = &clv
		return
	}

	closingPrice := closing.PriceForSide(bet.Side)
	bet.ClosingLine = &closing.Value
	bet.ClosingPrice = &closingPrice

	var clv float64
	if bet.LineType == models.LineTypeMoneyline {
		// price-based markets measure CLV in implied probability
		clv = market.ImpliedProbability(closingPrice) - market.ImpliedProbability(bet.PriceTaken)
	} else {
		clv = spread.ClosingLineValue(bet.LineType, bet.Side, bet.LineTaken, closing.Value)
	}
	bet.CLV = &clv
}
