// Package calibration fits the market-spread-versus-rating-differential
// regression used to validate and rescale the rating engine.
//
// The fitter consumes rating differentials that were read from persisted
// TeamSeasonRating rows, never recomputed from raw stats. Reimplementing
// rating math here is what made earlier calibration runs drift from the
// live system and produce unstable coefficients.
package calibration

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Sample pairs one historical game's persisted rating differential with the
// market spread it closed at, both in the HMA frame.
type Sample struct {
	GameID       uuid.UUID
	RatingDiff   float64
	MarketSpread float64
}

// Fitter fits the calibration regression
type Fitter struct {
	cfg    config.CalibrationConfig
	logger *logrus.Logger
}

// NewFitter creates a calibration fitter
func NewFitter(cfg config.CalibrationConfig, logger *logrus.Logger) *Fitter {
	if logger == nil {
		logger = logrus.New()
	}
	return &Fitter{cfg: cfg, logger: logger}
}

// Fit solves marketSpread = alpha + beta*ratingDiff (+ gamma*ratingDiff^2)
// by ridge-regularized normal equations. A sample below the configured
// minimum is refused outright rather than reported with misleading fit
// quality, and any non-finite intermediate aborts the fit.
func (f *Fitter) Fit(samples []Sample, modelVersion string) (*models.CalibrationFit, error) {
	if len(samples) < f.cfg.MinSampleSize {
		return nil, fmt.Errorf("%w: %d games, need at least %d",
			models.ErrInsufficientSample, len(samples), f.cfg.MinSampleSize)
	}

	for _, s := range samples {
		if !isFinite(s.RatingDiff) || !isFinite(s.MarketSpread) {
			return nil, fmt.Errorf("%w: non-finite sample for game %s",
				models.ErrNumericInstability, s.GameID)
		}
	}

	terms := 2
	if f.cfg.Quadratic {
		terms = 3
	}

	coeffs, err := f.solveNormalEquations(samples, terms)
	if err != nil {
		return nil, err
	}

	r2, rmse := fitQuality(samples, coeffs)
	if !isFinite(r2) || !isFinite(rmse) {
		return nil, fmt.Errorf("%w: degenerate fit quality", models.ErrNumericInstability)
	}

	fit := &models.CalibrationFit{
		ID:           uuid.New(),
		ModelVersion: modelVersion,
		Alpha:        coeffs[0],
		Beta:         coeffs[1],
		Lambda:       f.cfg.Lambda,
		R2:           r2,
		RMSE:         rmse,
		SampleSize:   len(samples),
		FittedAt:     time.Now().UTC(),
	}
	if terms == 3 {
		gamma := coeffs[2]
		fit.Gamma = &gamma
	}

	f.logger.WithFields(logrus.Fields{
		"model_version": modelVersion,
		"samples":       len(samples),
		"alpha":         fit.Alpha,
		"beta":          fit.Beta,
		"r2":            fit.R2,
		"rmse":          fit.RMSE,
	}).Info("Calibration fit complete")

	return fit, nil
}

// solveNormalEquations builds (X'X + lambda*I)b = X'y and solves it.
// The intercept is not penalized.
func (f *Fitter) solveNormalEquations(samples []Sample, terms int) ([]float64, error) {
	xtx := make([][]float64, terms)
	for i := range xtx {
		xtx[i] = make([]float64, terms)
	}
	xty := make([]float64, terms)

	for _, s := range samples {
		row := featureRow(s.RatingDiff, terms)
		for i := 0; i < terms; i++ {
			for j := 0; j < terms; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * s.MarketSpread
		}
	}

	for i := 1; i < terms; i++ {
		xtx[i][i] += f.cfg.Lambda
	}

	coeffs, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return nil, err
	}
	for _, c := range coeffs {
		if !isFinite(c) {
			return nil, fmt.Errorf("%w: non-finite coefficient", models.ErrNumericInstability)
		}
	}
	return coeffs, nil
}

func featureRow(x float64, terms int) []float64 {
	row := []float64{1, x}
	if terms == 3 {
		row = append(row, x*x)
	}
	return row
}

func predict(x float64, coeffs []float64) float64 {
	y := coeffs[0] + coeffs[1]*x
	if len(coeffs) == 3 {
		y += coeffs[2] * x * x
	}
	return y
}

func fitQuality(samples []Sample, coeffs []float64) (r2, rmse float64) {
	meanY := 0.0
	for _, s := range samples {
		meanY += s.MarketSpread
	}
	meanY /= float64(len(samples))

	ssRes := 0.0
	ssTot := 0.0
	for _, s := range samples {
		resid := s.MarketSpread - predict(s.RatingDiff, coeffs)
		ssRes += resid * resid
		dev := s.MarketSpread - meanY
		ssTot += dev * dev
	}

	rmse = math.Sqrt(ssRes / float64(len(samples)))
	if ssTot == 0 {
		// All market spreads identical; R-squared is undefined
		return math.NaN(), rmse
	}
	return 1 - ssRes/ssTot, rmse
}

// solveLinearSystem performs Gaussian elimination with partial pivoting on
// the small (2x2 or 3x3) symmetric system from the normal equations.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append(append([]float64{}, a[i]...), b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("%w: singular normal equations (degenerate rating differentials)",
				models.ErrNumericInstability)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < n; row++ {
			factor := m[row][col] / m[col][col]
			for k := col; k <= n; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	solution := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := m[row][n]
		for k := row + 1; k < n; k++ {
			sum -= m[row][k] * solution[k]
		}
		solution[row] = sum / m[row][row]
	}
	return solution, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
