// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	startDate, err := time.Parse("2006-01-02", cfg.Backtest.StartDate)
	if err != nil {
		return fmt.Errorf("invalid backtest start_date format: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", cfg.Backtest.EndDate)
	if err != nil {
		return fmt.Errorf("invalid backtest end_date format: %w", err)
	}
	if !startDate.Before(endDate) {
		return fmt.Errorf("backtest start_date must be before end_date")
	}

	if cfg.Hfa.ClipMin >= cfg.Hfa.ClipMax {
		return fmt.Errorf("hfa clip_min must be below clip_max")
	}
	if cfg.Hfa.BasePoints < cfg.Hfa.ClipMin || cfg.Hfa.BasePoints > cfg.Hfa.ClipMax {
		return fmt.Errorf("hfa base_points %.2f outside clip range [%.2f, %.2f]",
			cfg.Hfa.BasePoints, cfg.Hfa.ClipMin, cfg.Hfa.ClipMax)
	}

	if !(cfg.Edge.TierA > cfg.Edge.TierB && cfg.Edge.TierB > cfg.Edge.TierC) {
		return fmt.Errorf("edge tiers must be strictly descending (a > b > c)")
	}

	for name, weight := range cfg.Model.MetricWeights {
		if weight < 0 {
			return fmt.Errorf("metric weight %s must not be negative", name)
		}
	}

	return nil
}

// formatValidationErrors converts validator errors to readable messages
func formatValidationErrors(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return fmt.Errorf("config validation failed on field '%s' (rule '%s', value '%v'); %d error(s) total",
		first.Namespace(), first.Tag(), first.Value(), len(errs))
}
