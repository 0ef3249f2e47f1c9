package domain

import (
	"time"

	"github.com/Domenick1991/airquery/internal/query"
)

type Layover struct {
	Airport         string `json:"airport"`
	DurationMinutes int    `json:"durationMinutes"`
}

type Flight struct {
	ID                string    `json:"id"`
	Airline           string    `json:"airline"`
	FlightNumber      string    `json:"flightNumber"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DepartureTime     time.Time `json:"departureTime"`
	ArrivalTime       time.Time `json:"arrivalTime"`
	DurationMinutes   int       `json:"durationMinutes"`
	Stops             int       `json:"stops"`
	Price             float64   `json:"price"`
	FareClass         string    `json:"fareClass"`
	Discount          float64   `json:"discount"`
	Aircraft          string    `json:"aircraft"`
	Baggage           string    `json:"baggage"`
	OnTimePerformance float64   `json:"onTimePerformance"`
	Features          []string  `json:"features"`
	Layovers          []Layover `json:"layovers,omitempty"`
}

// Record flattens the flight for the query engine. Departure and arrival
// hours are exposed separately for the time-of-day filters.
func (f Flight) Record() query.Record {
	features := make([]any, 0, len(f.Features))
	for _, feature := range f.Features {
		features = append(features, feature)
	}

	rec := query.Record{
		FlightFieldID:              f.ID,
		FlightFieldAirline:         f.Airline,
		FlightFieldFlightNumber:    f.FlightNumber,
		FlightFieldOrigin:          f.Origin,
		FlightFieldDestination:     f.Destination,
		FlightFieldDurationMinutes: f.DurationMinutes,
		FlightFieldStops:           f.Stops,
		FlightFieldPrice:           f.Price,
		FlightFieldFareClass:       f.FareClass,
		FlightFieldFeatures:        features,
	}
	if !f.DepartureTime.IsZero() {
		rec[FlightFieldDepartureTime] = f.DepartureTime.Format(time.RFC3339)
		rec[FlightFieldDepartureHour] = f.DepartureTime.Hour()
	}
	if !f.ArrivalTime.IsZero() {
		rec[FlightFieldArrivalTime] = f.ArrivalTime.Format(time.RFC3339)
		rec[FlightFieldArrivalHour] = f.ArrivalTime.Hour()
	}
	return rec
}

func FlightRecords(flights []Flight) []query.Record {
	out := make([]query.Record, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.Record())
	}
	return out
}
