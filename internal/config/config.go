// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Model       ModelConfig       `mapstructure:"model" validate:"required"`
	Hfa         HfaConfig         `mapstructure:"hfa" validate:"required"`
	Edge        EdgeConfig        `mapstructure:"edge" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ModelConfig represents rating engine configuration.
// CalibrationFactor rescales the blended z-score sum onto a point-spread
// scale; it is re-derived whenever the calibration fitter is rerun and must
// never be hard-coded in rating math.
type ModelConfig struct {
	Version             string             `mapstructure:"version" validate:"required"`
	CalibrationFactor   float64            `mapstructure:"calibration_factor" validate:"required,gt=0"`
	BaselineRating      float64            `mapstructure:"baseline_rating"`
	MetricWeights       map[string]float64 `mapstructure:"metric_weights" validate:"required,min=1"`
	TalentWeight        float64            `mapstructure:"talent_weight" validate:"gte=0"`
	TalentDecayPerGame  float64            `mapstructure:"talent_decay_per_game" validate:"gte=0,lte=1"`
	FullConfidenceGames int                `mapstructure:"full_confidence_games" validate:"required,gt=0"`
}

// HfaConfig represents home-field-advantage calibration configuration.
// ShrinkageGames is the prior strength of the shrinkage estimator: a team
// needs that many home games before its observed mean residual counts as
// much as the league prior of zero adjustment.
type HfaConfig struct {
	BasePoints     float64 `mapstructure:"base_points" validate:"required,gt=0"`
	ClipMin        float64 `mapstructure:"clip_min" validate:"gte=0"`
	ClipMax        float64 `mapstructure:"clip_max" validate:"required,gt=0"`
	ShrinkageGames float64 `mapstructure:"shrinkage_games" validate:"required,gt=0"`
}

// EdgeConfig represents pick tiering thresholds in points of edge
type EdgeConfig struct {
	TierA float64 `mapstructure:"tier_a" validate:"required,gt=0"`
	TierB float64 `mapstructure:"tier_b" validate:"required,gt=0"`
	TierC float64 `mapstructure:"tier_c" validate:"required,gt=0"`
}

// CalibrationConfig represents regression fitter configuration
type CalibrationConfig struct {
	MinSampleSize int     `mapstructure:"min_sample_size" validate:"required,gt=0"`
	Lambda        float64 `mapstructure:"lambda" validate:"gte=0"`
	Quadratic     bool    `mapstructure:"quadratic"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate       string  `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string  `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	InitialBankroll float64 `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	Staking         string  `mapstructure:"staking" validate:"required,oneof=flat kelly"`
	FlatFraction    float64 `mapstructure:"flat_fraction" validate:"required,gt=0,lte=0.25"`
	KellyFraction   float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	KellyCap        float64 `mapstructure:"kelly_cap" validate:"required,gt=0,lte=0.25"`
	KellyEdgeScale  float64 `mapstructure:"kelly_edge_scale" validate:"required,gt=0"`
	PushTolerance   float64 `mapstructure:"push_tolerance" validate:"required,gt=0,lt=1"`
	DefaultPrice    int     `mapstructure:"default_price" validate:"required,lt=0"`
	RiskFreeRate    float64 `mapstructure:"risk_free_rate" validate:"gte=0"`
	OutputPath      string  `mapstructure:"output_path" validate:"required"`

	// Risk limits. Zero disables the corresponding control.
	MaxStakeFraction float64 `mapstructure:"max_stake_fraction" validate:"gte=0,lte=1"`
	DrawdownStop     float64 `mapstructure:"drawdown_stop" validate:"gte=0,lt=1"`
}

// SchedulerConfig represents in-season recompute scheduling
type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RatingsCron string `mapstructure:"ratings_cron" validate:"required"`
	GradingCron string `mapstructure:"grading_cron" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
