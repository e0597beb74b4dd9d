// Package main provides the rating recompute tool. One-shot by default;
// with -daemon it stays up running the scheduled recompute and grading
// jobs behind the health and metrics endpoints.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.Int("season", time.Now().Year(), "Season to compute ratings for")
		daemon     = flag.Bool("daemon", false, "Run the in-season scheduler instead of a one-shot recompute")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := mustLoadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	svc, err := service.NewModelService(cfg, db, log)
	if err != nil {
		log.Fatalf("Failed to create model service: %v", err)
	}

	if !*daemon {
		ratings, err := svc.ComputeRatings(ctx, *season)
		if err != nil {
			log.Fatalf("Rating recompute failed: %v", err)
		}
		log.WithFields(logrus.Fields{"season": *season, "teams": len(ratings)}).Info("Ratings computed")
		return
	}

	runDaemon(ctx, cfg, db, svc, *season, log)
}

func runDaemon(ctx context.Context, cfg *config.Config, db *database.DB, svc *service.ModelService, season int, log *logrus.Logger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     cfg.Model.Version,
		Port:        cfg.Metrics.Port,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}

	sched := scheduler.NewScheduler(svc, log)
	if err := sched.ScheduleFromConfig(cfg.Scheduler, season); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	healthServer.SetReady(true)

	log.WithField("next_run", sched.NextRun()).Info("Rating daemon running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		log.WithError(err).Warn("Scheduler shutdown error")
	}
	cancel()
}

func mustLoadConfig(path string) *config.Config {
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
