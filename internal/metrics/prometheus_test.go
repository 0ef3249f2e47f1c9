package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airquery/internal/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery(t *testing.T) {
	m := NewMetrics("airquery", prometheus.NewRegistry())

	m.ObserveQuery("flights", time.Now(), 4, nil)
	m.ObserveQuery("flights", time.Now(), 0, &query.ConfigurationError{Reason: "bad"})
	m.ObserveQuery("bookings", time.Now(), 0, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("flights", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("flights", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("bookings", "error")))
}

func TestObserveSync(t *testing.T) {
	m := NewMetrics("airquery", prometheus.NewRegistry())

	m.ObserveSync(5, nil)
	m.ObserveSync(2, errors.New("partial"))

	assert.Equal(t, 7.0, testutil.ToFloat64(m.BookingsSynced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncErrors))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery("flights", time.Now(), 1, nil)
		m.ObserveSync(1, nil)
	})
}
