package edge

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(config.EdgeConfig{TierA: 4.0, TierB: 3.0, TierC: 2.0})
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	return ev
}

func spreadLine(homeLine float64) *models.MarketLine {
	return &models.MarketLine{
		ID: uuid.New(), GameID: uuid.New(), Book: "consensus",
		LineType: models.LineTypeSpread, Value: homeLine,
		QuotedAt: time.Now(),
	}
}

func totalLine(total float64) *models.MarketLine {
	return &models.MarketLine{
		ID: uuid.New(), GameID: uuid.New(), Book: "consensus",
		LineType: models.LineTypeTotal, Value: total,
		QuotedAt: time.Now(),
	}
}

func TestSpreadPickHomeFavoredMarket(t *testing.T) {
	ev := testEvaluator(t)

	// Market: home -7. Model likes home by 10 -> home side is undervalued.
	pick := ev.EvaluateSpread(10, spreadLine(-7))
	if pick == nil {
		t.Fatalf("expected a pick")
	}
	if pick.Side != models.BetSideHome {
		t.Fatalf("model stronger on favorite must pick favorite, got %s", pick.Side)
	}
	if pick.Edge != 3 {
		t.Fatalf("expected edge +3, got %f", pick.Edge)
	}

	// Market: home -7. Model only likes home by 3 -> favorite overrated.
	pick = ev.EvaluateSpread(3, spreadLine(-7))
	if pick == nil || pick.Side != models.BetSideAway {
		t.Fatalf("overrated favorite must flip to the underdog")
	}
}

func TestSpreadPickAwayFavoredMarketIsSymmetric(t *testing.T) {
	ev := testEvaluator(t)

	// Market: home +7 (away favored). Model likes away by 10.
	pick := ev.EvaluateSpread(-10, spreadLine(7))
	if pick == nil || pick.Side != models.BetSideAway {
		t.Fatalf("away-favored symmetry broken: %+v", pick)
	}

	// Market: home +7. Model only likes away by 3 -> home dog undervalued.
	pick = ev.EvaluateSpread(-3, spreadLine(7))
	if pick == nil || pick.Side != models.BetSideHome {
		t.Fatalf("away-favored symmetry broken on the dog side: %+v", pick)
	}
}

func TestBelowThresholdYieldsNoPick(t *testing.T) {
	ev := testEvaluator(t)
	if pick := ev.EvaluateSpread(8.5, spreadLine(-7)); pick != nil {
		t.Fatalf("1.5 point edge is below the C tier, got %+v", pick)
	}
}

func TestTierBoundaries(t *testing.T) {
	ev := testEvaluator(t)

	cases := []struct {
		model float64
		tier  Tier
	}{
		{11.0, TierA}, // edge 4.0
		{10.5, TierB}, // edge 3.5
		{9.0, TierC},  // edge 2.0
	}
	for _, tc := range cases {
		pick := ev.EvaluateSpread(tc.model, spreadLine(-7))
		if pick == nil {
			t.Fatalf("expected pick at model %f", tc.model)
		}
		if pick.Tier != tc.tier {
			t.Fatalf("model %f: expected tier %s, got %s", tc.model, tc.tier, pick.Tier)
		}
	}
}

func TestTotalPickDirection(t *testing.T) {
	ev := testEvaluator(t)

	over := ev.EvaluateTotal(58.5, totalLine(54.5))
	if over == nil || over.Side != models.BetSideOver {
		t.Fatalf("model above market total must pick over, got %+v", over)
	}

	under := ev.EvaluateTotal(50.0, totalLine(54.5))
	if under == nil || under.Side != models.BetSideUnder {
		t.Fatalf("model below market total must pick under, got %+v", under)
	}
}

func TestWrongLineTypeIgnored(t *testing.T) {
	ev := testEvaluator(t)
	if pick := ev.EvaluateSpread(10, totalLine(54.5)); pick != nil {
		t.Fatalf("spread evaluation must ignore total lines")
	}
}

func TestUnorderedTiersRejected(t *testing.T) {
	if _, err := NewEvaluator(config.EdgeConfig{TierA: 2, TierB: 3, TierC: 4}); err == nil {
		t.Fatalf("expected inverted thresholds to be rejected")
	}
}
