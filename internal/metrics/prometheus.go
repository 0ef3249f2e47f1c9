package metrics

import (
	"errors"
	"time"

	"github.com/Domenick1991/airquery/internal/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	QueriesTotal   *prometheus.CounterVec
	QueryDuration  *prometheus.HistogramVec
	ResultSize     *prometheus.HistogramVec
	BookingsSynced prometheus.Counter
	SyncErrors     prometheus.Counter
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "The total number of list queries by view and outcome",
		}, []string{"view", "outcome"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time taken to load and query a list view",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		ResultSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_result_size",
			Help:      "Number of records returned by a list query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"view"}),
		BookingsSynced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_synced_total",
			Help:      "The total number of bookings published by the sync job",
		}),
		SyncErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_errors_total",
			Help:      "The total number of failed booking sync runs",
		}),
	}
}

func (m *Metrics) ObserveQuery(view string, started time.Time, results int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.Is(err, query.ErrInvalidQuery):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	m.QueriesTotal.WithLabelValues(view, outcome).Inc()
	m.QueryDuration.WithLabelValues(view).Observe(time.Since(started).Seconds())
	if err == nil {
		m.ResultSize.WithLabelValues(view).Observe(float64(results))
	}
}

func (m *Metrics) ObserveSync(published int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SyncErrors.Inc()
	}
	m.BookingsSynced.Add(float64(published))
}
