package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/kafka"
	"github.com/Domenick1991/airquery/internal/logger"
	kafkago "github.com/segmentio/kafka-go"
)

type Store interface {
	Upsert(ctx context.Context, booking domain.Booking) error
}

type Invalidator interface {
	InvalidateBookings(ctx context.Context) error
}

type Ingestor struct {
	store Store
	cache Invalidator
	log   logger.Logger
}

func NewIngestor(store Store, cache Invalidator, log logger.Logger) *Ingestor {
	return &Ingestor{store: store, cache: cache, log: log}
}

// Handle stores one booking event. Messages that cannot be decoded are
// logged and skipped; storage failures are returned so the consumer stops
// before committing past them.
func (i *Ingestor) Handle(ctx context.Context, msg kafkago.Message) error {
	var event kafka.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		i.log.Warn("skipping undecodable booking event", "offset", msg.Offset, "error", err)
		return nil
	}
	if event.Type != kafka.EventBookingSynced {
		i.log.Debug("ignoring booking event", "type", event.Type, "offset", msg.Offset)
		return nil
	}
	if event.Booking.BookingID == "" {
		i.log.Warn("skipping booking event without booking id", "offset", msg.Offset)
		return nil
	}

	if err := i.store.Upsert(ctx, event.Booking); err != nil {
		return fmt.Errorf("store booking %s: %w", event.Booking.BookingID, err)
	}
	if i.cache != nil {
		if err := i.cache.InvalidateBookings(ctx); err != nil {
			i.log.Warn("bookings cache invalidation failed", "error", err)
		}
	}
	return nil
}
