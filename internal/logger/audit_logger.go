// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for pick and grading events.
// Wrong picks have financial consequences, so every emitted pick and every
// bet state transition is recorded with its full numeric context.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPickEmitted logs a qualifying pick.
func (al *AuditLogger) LogPickEmitted(gameID, lineType, side, tier string, modelValue, marketValue, edge float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"game_id":      gameID,
		"line_type":    lineType,
		"side":         side,
		"tier":         tier,
		"model_value":  modelValue,
		"market_value": marketValue,
		"edge":         edge,
		"timestamp":    timestamp.Unix(),
	}).Info("Pick emitted")
}

// LogBetGraded logs a bet grading transition.
func (al *AuditLogger) LogBetGraded(betID, gameID, result string, stake, pnl, clv float64) {
	al.WithFields(logrus.Fields{
		"bet_id":  betID,
		"game_id": gameID,
		"result":  result,
		"stake":   stake,
		"pnl":     pnl,
		"clv":     clv,
	}).Info("Bet graded")
}

// LogFitRejected logs a calibration fit that was refused.
func (al *AuditLogger) LogFitRejected(modelVersion, reason string, sampleSize int) {
	al.WithFields(logrus.Fields{
		"model_version": modelVersion,
		"reason":        reason,
		"sample_size":   sampleSize,
	}).Warn("Calibration fit rejected")
}

// LogInvariantViolation logs a model invariant breach. These halt the batch.
func (al *AuditLogger) LogInvariantViolation(component, detail string, snapshot map[string]interface{}) {
	al.WithFields(logrus.Fields{
		"violating_component": component,
		"detail":              detail,
		"snapshot":            snapshot,
	}).Error("Invariant violation detected")
}
