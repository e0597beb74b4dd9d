package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamSeasonStat represents a team's season-level efficiency profile.
// Produced by the ingestion pipeline; read-only inside the model core.
type TeamSeasonStat struct {
	ID                 uuid.UUID          `db:"id" json:"id" validate:"required,uuid4"`
	TeamID             uuid.UUID          `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Season             int                `db:"season" json:"season" validate:"required,gt=0"`
	GamesPlayed        int                `db:"games_played" json:"games_played" validate:"gte=0"`
	OffYardsPerPlay    *float64           `db:"off_yards_per_play" json:"off_yards_per_play"`
	DefYardsPerPlay    *float64           `db:"def_yards_per_play" json:"def_yards_per_play"`
	OffSuccessRate     *float64           `db:"off_success_rate" json:"off_success_rate"`
	DefSuccessRate     *float64           `db:"def_success_rate" json:"def_success_rate"`
	OffEPAPerPlay      *float64           `db:"off_epa_per_play" json:"off_epa_per_play"`
	DefEPAPerPlay      *float64           `db:"def_epa_per_play" json:"def_epa_per_play"`
	PlaysPerGame       *float64           `db:"plays_per_game" json:"plays_per_game"`
	TalentComposite    *float64           `db:"talent_composite" json:"talent_composite"`
	RawMetrics         map[string]float64 `db:"raw_metrics" json:"raw_metrics,omitempty"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// Metric returns a named metric value by key, checking the typed columns
// first and the raw payload second.
func (s *TeamSeasonStat) Metric(key string) (float64, bool) {
	typed := map[string]*float64{
		MetricOffYPP:     s.OffYardsPerPlay,
		MetricDefYPP:     s.DefYardsPerPlay,
		MetricOffSuccess: s.OffSuccessRate,
		MetricDefSuccess: s.DefSuccessRate,
		MetricOffEPA:     s.OffEPAPerPlay,
		MetricDefEPA:     s.DefEPAPerPlay,
		MetricPace:       s.PlaysPerGame,
	}
	if v, ok := typed[key]; ok {
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	if s.RawMetrics != nil {
		if v, ok := s.RawMetrics[key]; ok {
			return v, true
		}
	}
	return 0, false
}

// HasAnyMetric reports whether at least one tracked metric is populated
func (s *TeamSeasonStat) HasAnyMetric() bool {
	for _, key := range TrackedMetrics() {
		if _, ok := s.Metric(key); ok {
			return true
		}
	}
	return false
}

// Metric keys used by the rating engine
const (
	MetricOffYPP     = "off_yards_per_play"
	MetricDefYPP     = "def_yards_per_play"
	MetricOffSuccess = "off_success_rate"
	MetricDefSuccess = "def_success_rate"
	MetricOffEPA     = "off_epa_per_play"
	MetricDefEPA     = "def_epa_per_play"
	MetricPace       = "plays_per_game"
)

// TrackedMetrics returns the canonical ordering of rating-engine metrics
func TrackedMetrics() []string {
	return []string{
		MetricOffYPP,
		MetricDefYPP,
		MetricOffSuccess,
		MetricDefSuccess,
		MetricOffEPA,
		MetricDefEPA,
		MetricPace,
	}
}
