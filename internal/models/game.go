package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
)

// SeasonType distinguishes regular season from postseason play
type SeasonType string

const (
	SeasonTypeRegular    SeasonType = "regular"
	SeasonTypePostseason SeasonType = "postseason"
)

// Game represents a scheduled or completed matchup
type Game struct {
	ID          uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	Season      int        `db:"season" json:"season" validate:"required,gt=0"`
	Week        int        `db:"week" json:"week" validate:"required,gt=0"`
	SeasonType  SeasonType `db:"season_type" json:"season_type" validate:"required,oneof=regular postseason"`
	HomeTeamID  uuid.UUID  `db:"home_team_id" json:"home_team_id" validate:"required,uuid4"`
	AwayTeamID  uuid.UUID  `db:"away_team_id" json:"away_team_id" validate:"required,uuid4"`
	NeutralSite bool       `db:"neutral_site" json:"neutral_site"`
	Kickoff     time.Time  `db:"kickoff" json:"kickoff" validate:"required"`
	Status      GameStatus `db:"status" json:"status" validate:"required,oneof=scheduled in_progress final"`
	HomeScore   *int       `db:"home_score" json:"home_score"`
	AwayScore   *int       `db:"away_score" json:"away_score"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// IsFinal checks whether the game has completed with both scores recorded
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

// IsGradeable reports whether bets on the game can be settled as of now
func (g *Game) IsGradeable(now time.Time) bool {
	return g.IsFinal() && g.Kickoff.Before(now)
}

// Margin returns the home-minus-away final margin. Zero for unfinished games.
func (g *Game) Margin() float64 {
	if !g.IsFinal() {
		return 0
	}
	return float64(*g.HomeScore - *g.AwayScore)
}

// TotalPoints returns the combined final score. Zero for unfinished games.
func (g *Game) TotalPoints() float64 {
	if !g.IsFinal() {
		return 0
	}
	return float64(*g.HomeScore + *g.AwayScore)
}
