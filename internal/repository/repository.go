package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game           GameRepository
	Stat           StatRepository
	Rating         RatingRepository
	Line           LineRepository
	Bet            BetRepository
	HfaConfig      HfaConfigRepository
	CalibrationFit CalibrationFitRepository
	BacktestResult BacktestResultRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:           NewPostgresGameRepository(db),
		Stat:           NewPostgresStatRepository(db),
		Rating:         NewPostgresRatingRepository(db),
		Line:           NewPostgresLineRepository(db),
		Bet:            NewPostgresBetRepository(db),
		HfaConfig:      NewPostgresHfaConfigRepository(db),
		CalibrationFit: NewPostgresCalibrationFitRepository(db),
		BacktestResult: NewPostgresBacktestResultRepository(db),
	}, nil
}
