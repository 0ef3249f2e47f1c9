package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/kafka"
	"github.com/Domenick1991/airquery/internal/logger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateBookings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func eventMessage(t *testing.T, event kafka.BookingEvent) kafkago.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkago.Message{Value: data}
}

func TestIngestor_Handle(t *testing.T) {
	ctx := context.Background()
	booking := domain.Booking{BookingID: "BK1", Status: domain.BookingStatusConfirmed, Amount: 120}

	store := &MockStore{}
	store.On("Upsert", ctx, booking).Return(nil).Once()
	cache := &MockInvalidator{}
	cache.On("InvalidateBookings", ctx).Return(errors.New("redis down")).Once()

	err := NewIngestor(store, cache, logger.NewNop()).Handle(ctx, eventMessage(t, kafka.BookingEvent{Type: kafka.EventBookingSynced, Booking: booking}))

	assert.NoError(t, err)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestIngestor_HandleSkips(t *testing.T) {
	testCases := []struct {
		name string
		msg  func(t *testing.T) kafkago.Message
	}{
		{name: "undecodable", msg: func(t *testing.T) kafkago.Message { return kafkago.Message{Value: []byte("{not json")} }},
		{name: "other event type", msg: func(t *testing.T) kafkago.Message {
			return eventMessage(t, kafka.BookingEvent{Type: "booking_deleted", Booking: domain.Booking{BookingID: "BK1"}})
		}},
		{name: "missing booking id", msg: func(t *testing.T) kafkago.Message {
			return eventMessage(t, kafka.BookingEvent{Type: kafka.EventBookingSynced})
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockStore{}

			err := NewIngestor(store, nil, logger.NewNop()).Handle(context.Background(), tc.msg(t))

			assert.NoError(t, err)
			store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestIngestor_HandleStoreError(t *testing.T) {
	store := &MockStore{}
	store.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("deadlock"))
	cache := &MockInvalidator{}

	err := NewIngestor(store, cache, logger.NewNop()).Handle(context.Background(),
		eventMessage(t, kafka.BookingEvent{Type: kafka.EventBookingSynced, Booking: domain.Booking{BookingID: "BK7"}}))

	assert.EqualError(t, err, "store booking BK7: deadlock")
	cache.AssertNotCalled(t, "InvalidateBookings", mock.Anything)
}
