package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages   []kafka.Message
	next       int
	commitErrs []error
	events     []string
	closed     bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if r.next >= len(r.messages) {
		return kafka.Message{}, io.EOF
	}
	msg := r.messages[r.next]
	r.next++
	r.events = append(r.events, fmt.Sprintf("fetch %s", msg.Key))
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	if len(r.commitErrs) > 0 {
		err := r.commitErrs[0]
		r.commitErrs = r.commitErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, m := range msgs {
		r.events = append(r.events, fmt.Sprintf("commit %s", m.Key))
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func testConsumer(reader *fakeReader) *Consumer {
	c := newConsumer(reader, nil)
	c.retryDelay = time.Millisecond
	return c
}

func messages(keys ...string) []kafka.Message {
	out := make([]kafka.Message, 0, len(keys))
	for i, k := range keys {
		out = append(out, kafka.Message{Key: []byte(k), Offset: int64(i)})
	}
	return out
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestConsumer_Close(t *testing.T) {
	reader := &fakeReader{}
	require.NoError(t, testConsumer(reader).Close())
	assert.True(t, reader.closed)
}

func TestConsumer_FailedMessageHandledAgainBeforeLaterCommit(t *testing.T) {
	reader := &fakeReader{messages: messages("BK1", "BK2")}
	c := testConsumer(reader)

	failures := map[string]int{"BK1": 2}
	err := c.Consume(context.Background(), func(_ context.Context, msg kafka.Message) error {
		key := string(msg.Key)
		reader.events = append(reader.events, "handle "+key)
		if failures[key] > 0 {
			failures[key]--
			return errors.New("store unavailable")
		}
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{
		"fetch BK1", "handle BK1", "handle BK1", "handle BK1", "commit BK1",
		"fetch BK2", "handle BK2", "commit BK2",
	}, reader.events)
}

func TestConsumer_CommitRetried(t *testing.T) {
	reader := &fakeReader{messages: messages("BK1"), commitErrs: []error{errors.New("rebalance")}}
	c := testConsumer(reader)

	err := c.Consume(context.Background(), func(context.Context, kafka.Message) error { return nil })

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"fetch BK1", "commit BK1"}, reader.events)
}

func TestConsumer_StopsRetryingOnCancel(t *testing.T) {
	reader := &fakeReader{messages: messages("BK1", "BK2")}
	c := testConsumer(reader)

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := c.Consume(ctx, func(context.Context, kafka.Message) error {
		attempts++
		if attempts == 3 {
			cancel()
		}
		return errors.New("store unavailable")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{"fetch BK1"}, reader.events)
}

func TestConsumer_ConsumeStopsOnCancelledContext(t *testing.T) {
	c := NewConsumer([]string{"127.0.0.1:1"}, "airquery-test", "booking-events", nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := c.Consume(ctx, func(context.Context, kafka.Message) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
