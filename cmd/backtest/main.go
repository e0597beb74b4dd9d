// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/backtest"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/spread"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		startDate  = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		staking    = flag.String("staking", "", "Override staking method: flat or kelly")
		monteCarlo = flag.Bool("monte-carlo", false, "Bootstrap the bet slate after the replay")
		output     = flag.String("output", "", "Override output directory for reports")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	btConfig := buildBacktestConfig(cfg, *startDate, *endDate, *staking, *output, log)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	engine := buildEngine(ctx, cfg, btConfig, db, log)

	state, metrics, err := engine.Run(ctx)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	fmt.Print(backtest.GenerateConsoleReport(metrics))
	writeReports(btConfig, state, metrics, log)

	if *monteCarlo {
		result := backtest.RunMonteCarlo(state.Bets, backtest.MonteCarloConfig{
			Iterations:      2000,
			InitialBankroll: btConfig.InitialBankroll,
		})
		log.WithFields(logrus.Fields{
			"probability_of_profit": result.ProbabilityOfProfit,
			"probability_of_ruin":   result.ProbabilityOfRuin,
			"var_95":                result.VaR95,
		}).Info("Monte Carlo bootstrap complete")
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	boot := logrus.New()

	cfg, err := config.Load(path)
	if err != nil {
		boot.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			boot.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			boot.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		boot.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildBacktestConfig(cfg *config.Config, startOverride, endOverride, stakingOverride, outputOverride string, log *logrus.Logger) backtest.BacktestConfig {
	btConfig, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	if startOverride != "" {
		parsed, err := time.Parse("2006-01-02", startOverride)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		btConfig.StartDate = parsed
	}
	if endOverride != "" {
		parsed, err := time.Parse("2006-01-02", endOverride)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
		btConfig.EndDate = parsed
	}
	if stakingOverride != "" {
		btConfig.Staking = stakingOverride
	}
	if outputOverride != "" {
		btConfig.OutputPath = outputOverride
	}
	if err := btConfig.Validate(); err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	return btConfig
}

func buildEngine(ctx context.Context, cfg *config.Config, btConfig backtest.BacktestConfig, db *database.DB, log *logrus.Logger) *backtest.Engine {
	ratingEngine := rating.NewEngine(cfg.Model, log)

	evaluator, err := edge.NewEvaluator(cfg.Edge)
	if err != nil {
		log.Fatalf("Invalid edge config: %v", err)
	}

	projector, err := buildProjector(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to build projector: %v", err)
	}

	engine, err := backtest.NewEngine(btConfig, db, ratingEngine, projector, evaluator, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func buildProjector(ctx context.Context, cfg *config.Config, db *database.DB) (*spread.Projector, error) {
	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, err
	}

	hfaConfig, err := repos.HfaConfig.GetLatest(ctx)
	if errors.Is(err, models.ErrNotFound) {
		hfaConfig = &models.HfaConfig{
			Version:    "base",
			BasePoints: cfg.Hfa.BasePoints,
			ClipMin:    cfg.Hfa.ClipMin,
			ClipMax:    cfg.Hfa.ClipMax,
		}
	} else if err != nil {
		return nil, err
	}

	return spread.NewProjector(hfaConfig)
}

func writeReports(btConfig backtest.BacktestConfig, state *backtest.BacktestState, metrics backtest.Metrics, log *logrus.Logger) {
	if btConfig.OutputPath == "" {
		return
	}
	if err := backtest.WriteJSONReport(metrics, filepath.Join(btConfig.OutputPath, "metrics.json")); err != nil {
		log.WithError(err).Warn("Failed to write JSON report")
	}
	if err := backtest.WriteCSVExport(metrics, filepath.Join(btConfig.OutputPath, "metrics.csv")); err != nil {
		log.WithError(err).Warn("Failed to write CSV export")
	}
	if err := backtest.WriteEquityCurve(state.EquityCurve, filepath.Join(btConfig.OutputPath, "equity_curve.csv")); err != nil {
		log.WithError(err).Warn("Failed to write equity curve")
	}
}
