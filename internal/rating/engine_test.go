package rating

import (
	"testing"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func testModelConfig() config.ModelConfig {
	return config.ModelConfig{
		Version:           "test",
		CalibrationFactor: 7.0,
		BaselineRating:    0,
		MetricWeights: map[string]float64{
			models.MetricOffYPP:     0.20,
			models.MetricDefYPP:     0.20,
			models.MetricOffSuccess: 0.15,
			models.MetricDefSuccess: 0.15,
			models.MetricOffEPA:     0.12,
			models.MetricDefEPA:     0.12,
			models.MetricPace:       0.06,
		},
		TalentWeight:        0.15,
		TalentDecayPerGame:  0.04,
		FullConfidenceGames: 8,
	}
}

func fptr(v float64) *float64 { return &v }

func fullStat(teamID uuid.UUID, offYPP, defYPP float64, games int) *models.TeamSeasonStat {
	return &models.TeamSeasonStat{
		ID:              uuid.New(),
		TeamID:          teamID,
		Season:          2023,
		GamesPlayed:     games,
		OffYardsPerPlay: fptr(offYPP),
		DefYardsPerPlay: fptr(defYPP),
		OffSuccessRate:  fptr(0.42),
		DefSuccessRate:  fptr(0.40),
		OffEPAPerPlay:   fptr(0.05),
		DefEPAPerPlay:   fptr(0.02),
		PlaysPerGame:    fptr(70),
	}
}

func TestComputeSeasonIsTotal(t *testing.T) {
	engine := NewEngine(testModelConfig(), nil)

	missing := uuid.New()
	stats := []*models.TeamSeasonStat{
		fullStat(uuid.New(), 6.5, 4.8, 10),
		fullStat(uuid.New(), 5.5, 5.5, 10),
		{ID: uuid.New(), TeamID: missing, Season: 2023}, // no metrics at all
	}

	ratings := engine.ComputeSeason(stats, 2023)
	if len(ratings) != 3 {
		t.Fatalf("expected 3 ratings, got %d", len(ratings))
	}

	var baseline *models.TeamSeasonRating
	for _, r := range ratings {
		if r.TeamID == missing {
			baseline = r
		}
	}
	if baseline == nil {
		t.Fatalf("expected a rating for the statless team")
	}
	if baseline.Confidence != 0 {
		t.Fatalf("expected zero confidence for statless team, got %f", baseline.Confidence)
	}
	if baseline.DataSource != models.RatingSourceBaseline {
		t.Fatalf("expected baseline data source, got %s", baseline.DataSource)
	}
	if baseline.PowerRating != testModelConfig().BaselineRating {
		t.Fatalf("expected baseline power rating, got %f", baseline.PowerRating)
	}
}

func TestStrongerTeamRatesHigher(t *testing.T) {
	engine := NewEngine(testModelConfig(), nil)

	strong := uuid.New()
	weak := uuid.New()
	stats := []*models.TeamSeasonStat{
		fullStat(strong, 7.0, 4.5, 10),
		fullStat(weak, 5.0, 6.5, 10),
		fullStat(uuid.New(), 6.0, 5.5, 10),
	}

	byTeam := ratingsByTeam(engine.ComputeSeason(stats, 2023))
	if byTeam[strong].PowerRating <= byTeam[weak].PowerRating {
		t.Fatalf("expected strong team (%f) above weak team (%f)",
			byTeam[strong].PowerRating, byTeam[weak].PowerRating)
	}
}

func TestDefensiveMetricsAreInverted(t *testing.T) {
	engine := NewEngine(testModelConfig(), nil)

	stingy := uuid.New()
	porous := uuid.New()
	// Identical offense, defense differs only by yards allowed
	stats := []*models.TeamSeasonStat{
		fullStat(stingy, 6.0, 4.2, 10),
		fullStat(porous, 6.0, 6.8, 10),
		fullStat(uuid.New(), 6.0, 5.5, 10),
	}

	byTeam := ratingsByTeam(engine.ComputeSeason(stats, 2023))
	if byTeam[stingy].DefenseRating <= byTeam[porous].DefenseRating {
		t.Fatalf("expected lower yards allowed to produce higher defense rating")
	}
}

func TestTalentDecaysWithGamesPlayed(t *testing.T) {
	engine := NewEngine(testModelConfig(), nil)

	early := fullStat(uuid.New(), 6.0, 5.0, 2)
	late := fullStat(uuid.New(), 6.0, 5.0, 12)
	early.TalentComposite = fptr(950)
	late.TalentComposite = fptr(950)
	other := fullStat(uuid.New(), 6.0, 5.0, 6)
	other.TalentComposite = fptr(700)

	stats := []*models.TeamSeasonStat{early, late, other}
	byTeam := ratingsByTeam(engine.ComputeSeason(stats, 2023))

	earlyTalent := byTeam[early.TeamID].TalentComponent
	lateTalent := byTeam[late.TeamID].TalentComponent
	if earlyTalent <= lateTalent {
		t.Fatalf("expected talent component to decay with games played: early=%f late=%f",
			earlyTalent, lateTalent)
	}
}

func TestMissingMetricsAreSkippedNotImputed(t *testing.T) {
	engine := NewEngine(testModelConfig(), nil)

	partial := uuid.New()
	stats := []*models.TeamSeasonStat{
		fullStat(uuid.New(), 6.5, 5.0, 10),
		fullStat(uuid.New(), 5.5, 5.5, 10),
		{
			ID:              uuid.New(),
			TeamID:          partial,
			Season:          2023,
			GamesPlayed:     10,
			OffYardsPerPlay: fptr(6.5), // only one metric present
		},
	}

	byTeam := ratingsByTeam(engine.ComputeSeason(stats, 2023))
	r := byTeam[partial]
	if r.DataSource != models.RatingSourceFull {
		t.Fatalf("partial stats are still a data source, got %s", r.DataSource)
	}
	if r.Confidence >= 0.5 {
		t.Fatalf("expected reduced confidence for partial metrics, got %f", r.Confidence)
	}
	if r.DefenseRating != 0 {
		t.Fatalf("absent defensive metrics must contribute zero, got %f", r.DefenseRating)
	}
}

func TestCalibrationFactorScalesPowerRating(t *testing.T) {
	low := testModelConfig()
	low.CalibrationFactor = 1.0
	high := testModelConfig()
	high.CalibrationFactor = 8.0

	teamID := uuid.New()
	stats := []*models.TeamSeasonStat{
		fullStat(teamID, 7.0, 4.5, 10),
		fullStat(uuid.New(), 5.0, 6.5, 10),
	}

	lowRating := ratingsByTeam(NewEngine(low, nil).ComputeSeason(stats, 2023))[teamID]
	highRating := ratingsByTeam(NewEngine(high, nil).ComputeSeason(stats, 2023))[teamID]

	if lowRating.PowerRating == 0 {
		t.Fatalf("expected non-zero rating")
	}
	ratio := highRating.PowerRating / lowRating.PowerRating
	if ratio < 7.99 || ratio > 8.01 {
		t.Fatalf("expected power rating to scale linearly with calibration factor, ratio=%f", ratio)
	}
}

func ratingsByTeam(ratings []*models.TeamSeasonRating) map[uuid.UUID]*models.TeamSeasonRating {
	byTeam := make(map[uuid.UUID]*models.TeamSeasonRating, len(ratings))
	for _, r := range ratings {
		byTeam[r.TeamID] = r
	}
	return byTeam
}
