package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/segmentio/kafka-go"
)

const (
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

// Handler processes one message. A message is committed only once its
// handler succeeds.
type Handler func(ctx context.Context, msg kafka.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader     messageReader
	log        logger.Logger
	retryDelay time.Duration
}

func NewConsumer(brokers []string, groupID, topic string, log logger.Logger) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		StartOffset:       kafka.FirstOffset,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}), log)
}

func newConsumer(reader messageReader, log logger.Logger) *Consumer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Consumer{reader: reader, log: log, retryDelay: defaultRetryDelay}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is cancelled or the reader fails. A message whose
// handler fails is retried with backoff and no later message is fetched
// until it succeeds, so the group offset never moves past it.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.retry(ctx, msg, "handle", func() error { return handler(ctx, msg) }); err != nil {
			return err
		}
		if err := c.retry(ctx, msg, "commit", func() error { return c.reader.CommitMessages(ctx, msg) }); err != nil {
			return err
		}
		c.log.Debug("message committed", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
	}
}

func (c *Consumer) retry(ctx context.Context, msg kafka.Message, op string, fn func() error) error {
	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		c.log.Warn("kafka message "+op+" failed, retrying",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset,
			"attempt", attempt, "retry_in", delay, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s message at offset %d: %w", op, msg.Offset, ctx.Err())
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}
