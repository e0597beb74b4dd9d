// Package main provides the calibration CLI: HFA training and the
// rating-to-spread regression fit.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	applogger "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/service"
)

var (
	configFile string
	season     int
	hfaSeasons []int
	hfaVersion string
	log        *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	svc        *service.ModelService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVarP(&season, "season", "s", time.Now().Year(), "Season to calibrate against")
	hfaCmd.Flags().IntSliceVar(&hfaSeasons, "seasons", nil, "Training seasons for the HFA window (defaults to --season)")
	hfaCmd.Flags().StringVar(&hfaVersion, "version", "", "Version tag for the new HFA calibration")

	rootCmd.AddCommand(hfaCmd)
	rootCmd.AddCommand(fitCmd)
}

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Train model calibrations from completed seasons",
	Long:  `Train the home-field-advantage adjustments and the rating-to-spread regression from completed games and persisted ratings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return fmt.Errorf("failed to set up dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var hfaCmd = &cobra.Command{
	Use:   "hfa",
	Short: "Train a new HFA calibration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		seasons := hfaSeasons
		if len(seasons) == 0 {
			seasons = []int{season}
		}

		version := hfaVersion
		if version == "" {
			version = fmt.Sprintf("hfa-%d-%s", seasons[len(seasons)-1], time.Now().UTC().Format("20060102"))
		}

		hfaConfig, err := svc.TrainHfa(context.Background(), seasons, version)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"version":     hfaConfig.Version,
			"base_points": hfaConfig.BasePoints,
			"teams":       len(hfaConfig.Adjustments),
		}).Info("HFA calibration trained")
		return nil
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the rating-to-spread regression",
	RunE: func(cmd *cobra.Command, args []string) error {
		fit, err := svc.FitCalibration(context.Background(), season)
		if err != nil {
			return err
		}

		fields := logrus.Fields{
			"alpha":       fit.Alpha,
			"beta":        fit.Beta,
			"r2":          fit.R2,
			"rmse":        fit.RMSE,
			"sample_size": fit.SampleSize,
		}
		if fit.Gamma != nil {
			fields["gamma"] = *fit.Gamma
		}
		log.WithFields(fields).Info("Calibration fit complete")
		return nil
	},
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			return err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log = applogger.NewLogger(cfg.App.LogLevel)

	db, err = database.NewDB(context.Background(), &cfg.Database)
	if err != nil {
		return err
	}

	svc, err = service.NewModelService(cfg, db, log)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
