package spread

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestSideQuoteSpread(t *testing.T) {
	// home -6.5 gives the home side a -6.5 handicap, the away side +6.5
	if got := SideQuote(models.LineTypeSpread, models.BetSideHome, -6.5); got != -6.5 {
		t.Errorf("home side quote = %v, want -6.5", got)
	}
	if got := SideQuote(models.LineTypeSpread, models.BetSideAway, -6.5); got != 6.5 {
		t.Errorf("away side quote = %v, want 6.5", got)
	}
}

func TestSideQuoteTotalOrientation(t *testing.T) {
	// lower posted totals are better numbers for the over, higher for the under
	if SideQuote(models.LineTypeTotal, models.BetSideOver, 50) <= SideQuote(models.LineTypeTotal, models.BetSideOver, 54) {
		t.Error("over must prefer the lower posted total")
	}
	if SideQuote(models.LineTypeTotal, models.BetSideUnder, 54) <= SideQuote(models.LineTypeTotal, models.BetSideUnder, 50) {
		t.Error("under must prefer the higher posted total")
	}
}

func TestCoverDiffSpread(t *testing.T) {
	// home -6.5, home wins by 7: covers by 0.5
	got := CoverDiff(models.LineTypeSpread, models.BetSideHome, -6.5, 7, 0)
	if got != 0.5 {
		t.Errorf("cover diff = %v, want 0.5", got)
	}
	// same game, away +6.5 loses by 0.5
	got = CoverDiff(models.LineTypeSpread, models.BetSideAway, -6.5, 7, 0)
	if got != -0.5 {
		t.Errorf("away cover diff = %v, want -0.5", got)
	}
}

func TestCoverDiffTotal(t *testing.T) {
	// posted 51.5, game lands 55: over covers by 3.5, under misses by 3.5
	over := CoverDiff(models.LineTypeTotal, models.BetSideOver, 51.5, 0, 55)
	under := CoverDiff(models.LineTypeTotal, models.BetSideUnder, 51.5, 0, 55)
	if over != 3.5 {
		t.Errorf("over cover diff = %v, want 3.5", over)
	}
	if under != -3.5 {
		t.Errorf("under cover diff = %v, want -3.5", under)
	}
}

func TestCoverDiffLandsOnLine(t *testing.T) {
	got := CoverDiff(models.LineTypeSpread, models.BetSideHome, -7, 7, 0)
	if got != 0 {
		t.Errorf("exact cover diff = %v, want 0", got)
	}
}

func TestClosingLineValuePositiveMeansBeatClose(t *testing.T) {
	tests := []struct {
		name     string
		lineType models.LineType
		side     models.BetSide
		taken    float64
		closing  float64
		want     float64
	}{
		{"home line moved toward home", models.LineTypeSpread, models.BetSideHome, -3, -6, 3},
		{"away side beat the close", models.LineTypeSpread, models.BetSideAway, 3, 6, 3},
		{"home bought the worse number", models.LineTypeSpread, models.BetSideHome, -6, -3, -3},
		{"over bought the low number", models.LineTypeTotal, models.BetSideOver, 50, 54, 4},
		{"under bought the high number", models.LineTypeTotal, models.BetSideUnder, 54, 50, 4},
	}
	for _, tt := range tests {
		if got := ClosingLineValue(tt.lineType, tt.side, tt.taken, tt.closing); got != tt.want {
			t.Errorf("%s: CLV = %v, want %v", tt.name, got, tt.want)
		}
	}
}
