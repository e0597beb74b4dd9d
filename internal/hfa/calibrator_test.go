package hfa

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func testHfaConfig() config.HfaConfig {
	return config.HfaConfig{
		BasePoints:     2.0,
		ClipMin:        0.5,
		ClipMax:        3.5,
		ShrinkageGames: 10,
	}
}

func evenRatings(teamIDs ...uuid.UUID) RatingSet {
	ratings := RatingSet{}
	for _, id := range teamIDs {
		ratings[RatingKey{id, 2023}] = &models.TeamSeasonRating{
			ID: uuid.New(), TeamID: id, Season: 2023,
			ModelVersion: "frozen", PowerRating: 0, Confidence: 1,
			DataSource: models.RatingSourceFull,
		}
	}
	return ratings
}

func iptr(v int) *int { return &v }

// homeGame builds a final regular-season home game with the given margin
// between two evenly rated teams, so the full margin beyond the base HFA
// shows up as residual.
func homeGame(home, away uuid.UUID, homeMargin int) *models.Game {
	homeScore := 24 + homeMargin
	awayScore := 24
	return &models.Game{
		ID: uuid.New(), Season: 2023, Week: 5,
		SeasonType: models.SeasonTypeRegular,
		HomeTeamID: home, AwayTeamID: away,
		Kickoff: time.Date(2023, 10, 7, 19, 0, 0, 0, time.UTC),
		Status:  models.GameStatusFinal,
		HomeScore: iptr(homeScore), AwayScore: iptr(awayScore),
	}
}

func TestShrinkagePenalizesSmallSamples(t *testing.T) {
	smallSample := uuid.New()
	largeSample := uuid.New()
	opponent := uuid.New()
	ratings := evenRatings(smallSample, largeSample, opponent)

	// Same per-game residual (+3 beyond base 2), very different sample sizes
	var games []*models.Game
	for i := 0; i < 2; i++ {
		games = append(games, homeGame(smallSample, opponent, 5))
	}
	for i := 0; i < 40; i++ {
		games = append(games, homeGame(largeSample, opponent, 5))
	}

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	small := cfg.Adjustments[smallSample]
	large := cfg.Adjustments[largeSample]
	if small.MeanResidual != large.MeanResidual {
		t.Fatalf("setup broken: residuals should match, %f vs %f", small.MeanResidual, large.MeanResidual)
	}
	if math.Abs(small.Points) >= math.Abs(large.Points) {
		t.Fatalf("2-game adjustment (%f) must be materially smaller than 40-game (%f)",
			small.Points, large.Points)
	}
	// n/(n+10): 2 games keep 1/6 of the residual, 40 games keep 4/5
	if small.Points > large.Points*0.5 {
		t.Fatalf("expected much stronger shrinkage at 2 games: %f vs %f", small.Points, large.Points)
	}
}

func TestClipInvariantHolds(t *testing.T) {
	fortress := uuid.New()
	opponent := uuid.New()
	ratings := evenRatings(fortress, opponent)

	// Huge residuals that would push effective HFA far past the clip range
	var games []*models.Game
	for i := 0; i < 40; i++ {
		games = append(games, homeGame(fortress, opponent, 20))
	}

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	adj := cfg.Adjustments[fortress]
	effective := cfg.BasePoints + adj.Points
	if effective < cfg.ClipMin || effective > cfg.ClipMax {
		t.Fatalf("effective hfa %f outside clip range [%f, %f]", effective, cfg.ClipMin, cfg.ClipMax)
	}
	if effective != cfg.ClipMax {
		t.Fatalf("expected clipping at the max, got %f", effective)
	}
}

func TestNeutralSiteGamesExcluded(t *testing.T) {
	team := uuid.New()
	opponent := uuid.New()
	ratings := evenRatings(team, opponent)

	neutral := homeGame(team, opponent, 10)
	neutral.NeutralSite = true
	real := homeGame(team, opponent, 3)

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train([]*models.Game{neutral, real}, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	adj := cfg.Adjustments[team]
	if adj.SampleSize != 1 {
		t.Fatalf("neutral games must not count toward the home sample, got %d", adj.SampleSize)
	}
}

func TestTeamWithoutHomeGamesGetsNoEntry(t *testing.T) {
	homeOnly := uuid.New()
	roadOnly := uuid.New()
	ratings := evenRatings(homeOnly, roadOnly)

	games := []*models.Game{homeGame(homeOnly, roadOnly, 3)}
	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if _, ok := cfg.Adjustments[roadOnly]; ok {
		t.Fatalf("road-only team must fall back to base constant, not carry an entry")
	}
	// Fallback path: the base constant applies unchanged
	if got := cfg.EffectivePoints(roadOnly, false); got != cfg.BasePoints {
		t.Fatalf("expected base fallback %f, got %f", cfg.BasePoints, got)
	}
}

func TestMissingRatingsAreSkippedNotFatal(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()
	opponent := uuid.New()
	ratings := evenRatings(known, opponent)

	games := []*models.Game{
		homeGame(known, opponent, 3),
		homeGame(unknown, opponent, 3), // no rating for home team
	}

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("a data gap must degrade, not fail: %v", err)
	}
	if _, ok := cfg.Adjustments[unknown]; ok {
		t.Fatalf("unratable team should have been skipped")
	}
}

func TestMultiSeasonWindowPoolsHomeGames(t *testing.T) {
	team := uuid.New()
	opponent := uuid.New()

	ratings := evenRatings(team, opponent)
	for _, id := range []uuid.UUID{team, opponent} {
		prior := *ratings[RatingKey{id, 2023}]
		prior.Season = 2022
		ratings[RatingKey{id, 2022}] = &prior
	}

	prior := homeGame(team, opponent, 5)
	prior.Season = 2022
	games := []*models.Game{prior, homeGame(team, opponent, 5)}

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if got := cfg.Adjustments[team].SampleSize; got != 2 {
		t.Fatalf("expected both seasons in the home sample, got %d", got)
	}
}

func TestRatingsDoNotCrossSeasons(t *testing.T) {
	team := uuid.New()
	opponent := uuid.New()
	ratings := evenRatings(team, opponent) // 2023 only

	stale := homeGame(team, opponent, 5)
	stale.Season = 2022 // no 2022 ratings exist
	games := []*models.Game{stale, homeGame(team, opponent, 5)}

	cfg, err := NewCalibrator(testHfaConfig(), nil).Train(games, ratings, "v-test")
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if got := cfg.Adjustments[team].SampleSize; got != 1 {
		t.Fatalf("season without ratings must be skipped, got sample size %d", got)
	}
}

func TestEmptyTrainingSetRejected(t *testing.T) {
	_, err := NewCalibrator(testHfaConfig(), nil).Train(nil, nil, "v-test")
	if !errors.Is(err, models.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
}
