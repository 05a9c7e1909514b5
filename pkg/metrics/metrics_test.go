package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBooking(t *testing.T) {
	m := New("booking-test", prometheus.NewRegistry())

	m.ObserveBooking(OutcomeCreated, "client")
	m.ObserveBooking(OutcomeCreated, "client")
	m.ObserveBooking(OutcomeConflict, "technical")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingOutcomes.WithLabelValues(OutcomeCreated, "client")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingOutcomes.WithLabelValues(OutcomeConflict, "technical")))
}

func TestObserveBooking_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveBooking(OutcomeRejected, "client") })
}
