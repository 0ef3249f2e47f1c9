package domain

import (
	"testing"
	"time"

	"github.com/Domenick1991/airquery/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlight_Record(t *testing.T) {
	f := Flight{
		ID:            "FL002",
		Airline:       "Delta Air Lines",
		FlightNumber:  "DL4567",
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureTime: time.Date(2023, 6, 15, 10, 15, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2023, 6, 15, 15, 30, 0, 0, time.UTC),
		Stops:         1,
		Price:         279,
		Features:      []string{"USB charging ports"},
	}

	rec := f.Record()

	assert.Equal(t, "2023-06-15T10:15:00Z", rec[FlightFieldDepartureTime])
	assert.Equal(t, 10, rec[FlightFieldDepartureHour])
	assert.Equal(t, 15, rec[FlightFieldArrivalHour])
	assert.Equal(t, 279.0, rec[FlightFieldPrice])
}

func TestFlight_RecordZeroTimes(t *testing.T) {
	rec := Flight{ID: "X"}.Record()
	_, ok := rec[FlightFieldDepartureHour]
	assert.False(t, ok)
}

func TestFlightSchema_RejectsUnknownFields(t *testing.T) {
	engine := query.NewEngine(FlightSchema())
	_, err := engine.Execute(FlightRecords([]Flight{{ID: "A"}}), query.Query{}.SortBy("seat_map", query.Ascending))
	require.Error(t, err)
	assert.ErrorIs(t, err, query.ErrInvalidQuery)
}
