package calibration

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func testFitter(lambda float64, quadratic bool) *Fitter {
	return NewFitter(config.CalibrationConfig{
		MinSampleSize: 30,
		Lambda:        lambda,
		Quadratic:     quadratic,
	}, nil)
}

func linearSamples(n int, alpha, beta float64) []Sample {
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i%41)/2.0 - 10.0 // rating diffs in [-10, 10]
		samples = append(samples, Sample{
			GameID:       uuid.New(),
			RatingDiff:   x,
			MarketSpread: alpha + beta*x,
		})
	}
	return samples
}

func TestFitRecoversLinearRelationship(t *testing.T) {
	fit, err := testFitter(0, false).Fit(linearSamples(80, 1.5, 0.92), "v2")
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	if math.Abs(fit.Alpha-1.5) > 1e-6 {
		t.Fatalf("expected alpha 1.5, got %f", fit.Alpha)
	}
	if math.Abs(fit.Beta-0.92) > 1e-6 {
		t.Fatalf("expected beta 0.92, got %f", fit.Beta)
	}
	if fit.R2 < 0.9999 {
		t.Fatalf("noiseless data must fit near-perfectly, r2=%f", fit.R2)
	}
	if fit.RMSE > 1e-6 {
		t.Fatalf("expected near-zero rmse, got %f", fit.RMSE)
	}
	if fit.Gamma != nil {
		t.Fatalf("linear fit must not report a quadratic term")
	}
}

func TestQuadraticFitRecoversCurvature(t *testing.T) {
	samples := make([]Sample, 0, 60)
	for i := 0; i < 60; i++ {
		x := float64(i)/3.0 - 10.0
		samples = append(samples, Sample{
			GameID:       uuid.New(),
			RatingDiff:   x,
			MarketSpread: 0.5 + 0.9*x + 0.02*x*x,
		})
	}

	fit, err := testFitter(0, true).Fit(samples, "v2")
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if fit.Gamma == nil {
		t.Fatalf("expected quadratic term")
	}
	if math.Abs(*fit.Gamma-0.02) > 1e-6 {
		t.Fatalf("expected gamma 0.02, got %f", *fit.Gamma)
	}
}

func TestInsufficientSampleIsRefused(t *testing.T) {
	_, err := testFitter(0, false).Fit(linearSamples(29, 1, 1), "v2")
	if !errors.Is(err, models.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
}

func TestNonFiniteInputShortCircuits(t *testing.T) {
	samples := linearSamples(40, 1, 1)
	samples[7].MarketSpread = math.NaN()

	_, err := testFitter(0, false).Fit(samples, "v2")
	if !errors.Is(err, models.ErrNumericInstability) {
		t.Fatalf("expected ErrNumericInstability, got %v", err)
	}
}

func TestDegenerateDifferentialsRejected(t *testing.T) {
	samples := make([]Sample, 0, 40)
	for i := 0; i < 40; i++ {
		samples = append(samples, Sample{GameID: uuid.New(), RatingDiff: 3.0, MarketSpread: 2.5})
	}

	_, err := testFitter(0, false).Fit(samples, "v2")
	if !errors.Is(err, models.ErrNumericInstability) {
		t.Fatalf("constant rating diffs make the system singular, got %v", err)
	}
}

func TestRidgeShrinksSlope(t *testing.T) {
	samples := linearSamples(60, 0, 1.0)

	plain, err := testFitter(0, false).Fit(samples, "v2")
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	ridged, err := testFitter(500, false).Fit(samples, "v2")
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	if math.Abs(ridged.Beta) >= math.Abs(plain.Beta) {
		t.Fatalf("l2 penalty must shrink the slope: %f vs %f", ridged.Beta, plain.Beta)
	}
	if ridged.Lambda != 500 {
		t.Fatalf("fit must report the lambda it used")
	}
}
