package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordPickEmitted(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPickEmitted("A", 4.5)
		RecordPickEmitted("C", 2.1)
	})
}

func TestRecordBetGraded(t *testing.T) {
	InitRegistry()

	for _, result := range []string{"win", "loss", "push"} {
		assert.NotPanics(t, func() {
			RecordBetGraded(result)
		})
	}
}

func TestGaugesAcceptAnyValue(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		CurrentBankroll.Set(10000)
		CurrentBankroll.Set(0)
		CalibrationR2.Set(0.87)
		HfaBasePoints.Set(2.0)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}
