// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand ${VAR} placeholders before handing the document to viper
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// The config file is optional; defaults plus environment variables are enough
// to run the batch tools against a local database.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("model.version", "v2")
	v.SetDefault("model.calibration_factor", 7.0)
	v.SetDefault("model.baseline_rating", 0.0)
	v.SetDefault("model.talent_weight", 0.15)
	v.SetDefault("model.talent_decay_per_game", 0.04)
	v.SetDefault("model.full_confidence_games", 8)
	v.SetDefault("model.metric_weights", map[string]float64{
		"off_yards_per_play": 0.20,
		"def_yards_per_play": 0.20,
		"off_success_rate":   0.15,
		"def_success_rate":   0.15,
		"off_epa_per_play":   0.12,
		"def_epa_per_play":   0.12,
		"plays_per_game":     0.06,
	})

	v.SetDefault("hfa.base_points", 2.0)
	v.SetDefault("hfa.clip_min", 0.5)
	v.SetDefault("hfa.clip_max", 3.5)
	v.SetDefault("hfa.shrinkage_games", 10.0)

	v.SetDefault("edge.tier_a", 4.0)
	v.SetDefault("edge.tier_b", 3.0)
	v.SetDefault("edge.tier_c", 2.0)

	v.SetDefault("calibration.min_sample_size", 30)
	v.SetDefault("calibration.lambda", 0.0)
	v.SetDefault("calibration.quadratic", false)

	v.SetDefault("backtest.staking", "flat")
	v.SetDefault("backtest.flat_fraction", 0.02)
	v.SetDefault("backtest.kelly_fraction", 0.25)
	v.SetDefault("backtest.kelly_cap", 0.05)
	v.SetDefault("backtest.kelly_edge_scale", 14.0)
	v.SetDefault("backtest.push_tolerance", 0.5)
	v.SetDefault("backtest.default_price", -110)
	v.SetDefault("backtest.output_path", "./output/backtest_results.json")
	v.SetDefault("backtest.max_stake_fraction", 0.0)
	v.SetDefault("backtest.drawdown_stop", 0.0)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.ratings_cron", "0 8 * * 2")
	v.SetDefault("scheduler.grading_cron", "0 6 * * *")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
