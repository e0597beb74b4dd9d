package spread

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func testHfa(adjustments map[uuid.UUID]models.HfaAdjustment) *models.HfaConfig {
	if adjustments == nil {
		adjustments = map[uuid.UUID]models.HfaAdjustment{}
	}
	return &models.HfaConfig{
		Version:     "test",
		BasePoints:  2.0,
		ClipMin:     0.5,
		ClipMax:     3.5,
		Adjustments: adjustments,
	}
}

func ratingOf(power, confidence float64) *models.TeamSeasonRating {
	return &models.TeamSeasonRating{
		ID:          uuid.New(),
		TeamID:      uuid.New(),
		Season:      2023,
		PowerRating: power,
		Confidence:  confidence,
		DataSource:  models.RatingSourceFull,
	}
}

func TestNeutralSiteAntisymmetry(t *testing.T) {
	projector, err := NewProjector(testHfa(nil))
	if err != nil {
		t.Fatalf("projector: %v", err)
	}

	a := ratingOf(12.5, 0.9)
	b := ratingOf(-3.25, 0.8)

	ab, err := projector.Project(a, b, true)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	ba, err := projector.Project(b, a, true)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if math.Abs(ab.Spread+ba.Spread) > 1e-9 {
		t.Fatalf("expected antisymmetry at neutral site: %f vs %f", ab.Spread, ba.Spread)
	}
}

func TestEqualRatingsYieldBaseHfa(t *testing.T) {
	projector, err := NewProjector(testHfa(nil))
	if err != nil {
		t.Fatalf("projector: %v", err)
	}

	home := ratingOf(5.0, 1.0)
	away := ratingOf(5.0, 1.0)

	proj, err := projector.Project(home, away, false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if proj.Spread != 2.0 {
		t.Fatalf("expected spread == base hfa 2.0, got %f", proj.Spread)
	}
}

func TestSignConvention(t *testing.T) {
	projector, err := NewProjector(testHfa(nil))
	if err != nil {
		t.Fatalf("projector: %v", err)
	}

	strong := ratingOf(10, 1)
	weak := ratingOf(-5, 1)

	homeStrong, err := projector.Project(strong, weak, false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if homeStrong.Spread <= 0 {
		t.Fatalf("home favored must be positive in HMA frame, got %f", homeStrong.Spread)
	}

	homeWeak, err := projector.Project(weak, strong, false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if homeWeak.Spread >= 0 {
		t.Fatalf("away favored must be negative in HMA frame, got %f", homeWeak.Spread)
	}
}

func TestTeamAdjustmentApplied(t *testing.T) {
	home := ratingOf(0, 1)
	away := ratingOf(0, 1)

	cfg := testHfa(map[uuid.UUID]models.HfaAdjustment{
		home.TeamID: {TeamID: home.TeamID, Points: 1.0, SampleSize: 40},
	})
	projector, err := NewProjector(cfg)
	if err != nil {
		t.Fatalf("projector: %v", err)
	}

	proj, err := projector.Project(home, away, false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if proj.Spread != 3.0 {
		t.Fatalf("expected base 2.0 + adjustment 1.0, got %f", proj.Spread)
	}
}

func TestNeutralSiteZeroesHfa(t *testing.T) {
	home := ratingOf(0, 1)
	cfg := testHfa(map[uuid.UUID]models.HfaAdjustment{
		home.TeamID: {TeamID: home.TeamID, Points: 1.0, SampleSize: 40},
	})
	projector, err := NewProjector(cfg)
	if err != nil {
		t.Fatalf("projector: %v", err)
	}
	if hfa := projector.EffectiveHfa(home.TeamID, true); hfa != 0 {
		t.Fatalf("neutral site must zero hfa, got %f", hfa)
	}
}

func TestProjectorRejectsClipViolation(t *testing.T) {
	teamID := uuid.New()
	cfg := testHfa(map[uuid.UUID]models.HfaAdjustment{
		teamID: {TeamID: teamID, Points: 4.0, SampleSize: 40}, // base 2 + 4 = 6 > clip max
	})
	if _, err := NewProjector(cfg); err == nil {
		t.Fatalf("expected clip invariant violation to be rejected")
	}
}

func TestConfidenceIsPairwiseMinimum(t *testing.T) {
	projector, err := NewProjector(testHfa(nil))
	if err != nil {
		t.Fatalf("projector: %v", err)
	}

	proj, err := projector.Project(ratingOf(5, 0.9), ratingOf(3, 0.2), false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if proj.Confidence != 0.2 {
		t.Fatalf("expected pairwise minimum confidence, got %f", proj.Confidence)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	model := 6.5
	if got := MarketToModel(ModelToMarket(model)); got != model {
		t.Fatalf("frame conversion must round-trip, got %f", got)
	}
	if ModelToMarket(6.5) != -6.5 {
		t.Fatalf("home favorite must quote negative in market frame")
	}
}

func TestSideMarginFlipsForAway(t *testing.T) {
	if SideMargin(models.BetSideHome, 7) != 7 {
		t.Fatalf("home side sees HMA margin directly")
	}
	if SideMargin(models.BetSideAway, 7) != -7 {
		t.Fatalf("away side sees negated margin")
	}
}
