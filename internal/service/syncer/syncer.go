// Package syncer moves bookings from the upstream booking API into Postgres:
// Syncer publishes them to Kafka and Ingestor stores what it consumes.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/kafka"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
)

type Source interface {
	Fetch(ctx context.Context) ([]domain.Booking, error)
}

const publishAttempts = 3

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

type Syncer struct {
	source   Source
	producer Producer
	topic    string
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewSyncer(source Source, producer Producer, topic string, log logger.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{
		source:   source,
		producer: producer,
		topic:    topic,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// Sync publishes every upstream booking once and reports how many were
// published. Failed publishes do not stop the run; they are joined into the
// returned error.
func (s *Syncer) Sync(ctx context.Context) (published int, err error) {
	defer func() { s.metrics.ObserveSync(published, err) }()

	bookings, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch bookings: %w", err)
	}

	syncedAt := s.now().UTC()
	var errs []error
	for _, b := range bookings {
		if b.BookingID == "" {
			s.log.Warn("skipping booking without id", "flight_id", b.FlightID)
			continue
		}
		event := kafka.BookingEvent{Type: kafka.EventBookingSynced, Booking: b, SyncedAt: syncedAt}
		if err := s.producer.PublishWithRetry(ctx, s.topic, b.BookingID, event, publishAttempts); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", b.BookingID, err))
			continue
		}
		published++
	}

	s.log.Info("booking sync finished", "fetched", len(bookings), "published", published, "failed", len(errs))
	return published, errors.Join(errs...)
}
