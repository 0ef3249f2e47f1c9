package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func bookingRow(havePassenger bool) fakeRow {
	return fakeRow{values: []any{
		"BK12345", "AA1234",
		"P1", "Grace Hopper", "+1555", havePassenger,
		"JFK", "LAX", "2025-05-01T10:00:00", "2025-06-15T08:30:00", "2025-06-15T11:45:00",
		"CONFIRMED", "PAID", 299.0, "USD", "Economy", "14C", "",
	}}
}

func TestScanBooking(t *testing.T) {
	b, err := scanBooking(bookingRow(true))
	require.NoError(t, err)

	assert.Equal(t, "BK12345", b.BookingID)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
	require.NotNil(t, b.Passenger)
	assert.Equal(t, "Grace Hopper", b.Passenger.PassengerName)
}

func TestScanBooking_WithoutPassenger(t *testing.T) {
	b, err := scanBooking(bookingRow(false))
	require.NoError(t, err)
	assert.Nil(t, b.Passenger)
}

func TestScanBooking_Error(t *testing.T) {
	_, err := scanBooking(fakeRow{err: errors.New("conn reset")})
	assert.ErrorContains(t, err, "failed to scan booking")
}

func TestUpsertArgs(t *testing.T) {
	args := upsertArgs(domain.Booking{
		BookingID:     "BK1",
		Passenger:     &domain.PassengerDetails{PassengerName: "Ada"},
		Status:        "Payment Initiated",
		PaymentStatus: "not-paid",
	})

	require.Len(t, args, 17)
	assert.Equal(t, "BK1", args[0])
	name, ok := args[3].(*string)
	require.True(t, ok)
	assert.Equal(t, "Ada", *name)
	assert.Equal(t, "PAYMENT_INITIATED", args[10])
	assert.Equal(t, "NOT_PAID", args[11])
}

func TestUpsertArgs_NullPassenger(t *testing.T) {
	args := upsertArgs(domain.Booking{BookingID: "BK2"})
	assert.Nil(t, args[2].(*string))
	assert.Nil(t, args[3].(*string))
	assert.Nil(t, args[4].(*string))
}
