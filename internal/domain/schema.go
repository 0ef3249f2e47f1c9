package domain

import "github.com/Domenick1991/airquery/internal/query"

const (
	FlightFieldID              = "id"
	FlightFieldAirline         = "airline"
	FlightFieldFlightNumber    = "flight_number"
	FlightFieldOrigin          = "origin"
	FlightFieldDestination     = "destination"
	FlightFieldDepartureTime   = "departure_time"
	FlightFieldArrivalTime     = "arrival_time"
	FlightFieldDepartureHour   = "departure_hour"
	FlightFieldArrivalHour     = "arrival_hour"
	FlightFieldDurationMinutes = "duration_minutes"
	FlightFieldStops           = "stops"
	FlightFieldPrice           = "price"
	FlightFieldFareClass       = "fare_class"
	FlightFieldFeatures        = "features"
)

const (
	BookingFieldID            = "booking_id"
	BookingFieldFlightID      = "flight_id"
	BookingFieldPassenger     = "passenger_details"
	BookingFieldPassengerName = "passenger_details.passenger_name"
	BookingFieldPassengerID   = "passenger_details.passenger_id"
	BookingFieldPhone         = "passenger_details.phone"
	BookingFieldFrom          = "from"
	BookingFieldDestination   = "destination"
	BookingFieldBookingTime   = "booking_date_time"
	BookingFieldDeparture     = "original_departure_date_time"
	BookingFieldArrival       = "arrival_date_time"
	BookingFieldStatus        = "booking_status"
	BookingFieldPaymentStatus = "payment_status"
	BookingFieldAmount        = "amount"
	BookingFieldCurrency      = "currency"
	BookingFieldClass         = "class"
	BookingFieldSeat          = "seat_number"
)

func FlightSchema() *query.Schema {
	return query.NewSchema(
		query.Field{Path: FlightFieldID, Type: query.TypeString},
		query.Field{Path: FlightFieldAirline, Type: query.TypeString, Searchable: true},
		query.Field{Path: FlightFieldFlightNumber, Type: query.TypeString, Searchable: true},
		query.Field{Path: FlightFieldOrigin, Type: query.TypeString, Searchable: true},
		query.Field{Path: FlightFieldDestination, Type: query.TypeString, Searchable: true},
		query.Field{Path: FlightFieldDepartureTime, Type: query.TypeDate},
		query.Field{Path: FlightFieldArrivalTime, Type: query.TypeDate},
		query.Field{Path: FlightFieldDepartureHour, Type: query.TypeNumber},
		query.Field{Path: FlightFieldArrivalHour, Type: query.TypeNumber},
		query.Field{Path: FlightFieldDurationMinutes, Type: query.TypeNumber},
		query.Field{Path: FlightFieldStops, Type: query.TypeNumber},
		query.Field{Path: FlightFieldPrice, Type: query.TypeNumber},
		query.Field{Path: FlightFieldFareClass, Type: query.TypeString},
		query.Field{Path: FlightFieldFeatures, Type: query.TypeString},
	)
}

func BookingSchema() *query.Schema {
	return query.NewSchema(
		query.Field{Path: BookingFieldID, Type: query.TypeString, Searchable: true},
		query.Field{Path: BookingFieldFlightID, Type: query.TypeString},
		query.Field{Path: BookingFieldPassengerName, Type: query.TypeString, Searchable: true},
		query.Field{Path: BookingFieldPassengerID, Type: query.TypeString},
		query.Field{Path: BookingFieldPhone, Type: query.TypeString},
		query.Field{Path: BookingFieldFrom, Type: query.TypeString, Searchable: true},
		query.Field{Path: BookingFieldDestination, Type: query.TypeString, Searchable: true},
		query.Field{Path: BookingFieldBookingTime, Type: query.TypeDate},
		query.Field{Path: BookingFieldDeparture, Type: query.TypeDate},
		query.Field{Path: BookingFieldArrival, Type: query.TypeDate},
		query.Field{Path: BookingFieldStatus, Type: query.TypeString},
		query.Field{Path: BookingFieldPaymentStatus, Type: query.TypeString},
		query.Field{Path: BookingFieldAmount, Type: query.TypeNumber},
		query.Field{Path: BookingFieldCurrency, Type: query.TypeString},
		query.Field{Path: BookingFieldClass, Type: query.TypeString},
		query.Field{Path: BookingFieldSeat, Type: query.TypeString},
	)
}

// BookingRule buckets bookings for the manage-booking tabs.
var BookingRule = query.StatusRule{
	StatusField:       BookingFieldStatus,
	DepartureField:    BookingFieldDeparture,
	CancelledStatuses: []string{string(BookingStatusCancelled)},
	ActiveStatuses: []string{
		string(BookingStatusConfirmed),
		string(BookingStatusPaymentInitiated),
		string(BookingStatusScheduled),
	},
}
