package domain

import (
	"strings"
	"time"

	"github.com/Domenick1991/airquery/internal/query"
)

type BookingStatus string

const (
	BookingStatusConfirmed        BookingStatus = "CONFIRMED"
	BookingStatusPaymentInitiated BookingStatus = "PAYMENT_INITIATED"
	BookingStatusScheduled        BookingStatus = "SCHEDULED"
	BookingStatusCancelled        BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusNotPaid PaymentStatus = "NOT_PAID"
)

// RefundRate is applied to the amount of a cancelled booking.
const RefundRate = 0.9

// NormalizeBookingStatus maps upstream spellings such as "Payment Initiated"
// onto the enumeration. Unknown values are upper-cased and kept.
func NormalizeBookingStatus(s string) BookingStatus {
	return BookingStatus(normalizeEnum(s))
}

func NormalizePaymentStatus(s string) PaymentStatus {
	return PaymentStatus(normalizeEnum(s))
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func (s BookingStatus) Active() bool {
	switch NormalizeBookingStatus(string(s)) {
	case BookingStatusConfirmed, BookingStatusPaymentInitiated, BookingStatusScheduled:
		return true
	}
	return false
}

type PassengerDetails struct {
	PassengerID   string `json:"passenger_id,omitempty"`
	PassengerName string `json:"passenger_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Booking mirrors the upstream booking list payload. Timestamps stay
// ISO-8601 strings; the engine parses them on demand.
type Booking struct {
	BookingID         string            `json:"booking_id"`
	FlightID          string            `json:"flight_id"`
	Passenger         *PassengerDetails `json:"passenger_details,omitempty"`
	From              string            `json:"from"`
	Destination       string            `json:"destination"`
	BookingDateTime   string            `json:"booking_date_time"`
	DepartureDateTime string            `json:"original_departure_date_time"`
	ArrivalDateTime   string            `json:"arrival_date_time"`
	Status            BookingStatus     `json:"booking_status"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	Class             string            `json:"class,omitempty"`
	SeatNumber        string            `json:"seat_number,omitempty"`
	UpdatedAt         string            `json:"updated_at,omitempty"`
}

// Record omits empty fields so the engine treats them as missing.
func (b Booking) Record() query.Record {
	rec := query.Record{}
	setString(rec, BookingFieldID, b.BookingID)
	setString(rec, BookingFieldFlightID, b.FlightID)
	setString(rec, BookingFieldFrom, b.From)
	setString(rec, BookingFieldDestination, b.Destination)
	setString(rec, BookingFieldBookingTime, b.BookingDateTime)
	setString(rec, BookingFieldDeparture, b.DepartureDateTime)
	setString(rec, BookingFieldArrival, b.ArrivalDateTime)
	setString(rec, BookingFieldStatus, string(NormalizeBookingStatus(string(b.Status))))
	setString(rec, BookingFieldPaymentStatus, string(NormalizePaymentStatus(string(b.PaymentStatus))))
	setString(rec, BookingFieldCurrency, b.Currency)
	setString(rec, BookingFieldClass, b.Class)
	setString(rec, BookingFieldSeat, b.SeatNumber)
	rec[BookingFieldAmount] = b.Amount

	if b.Passenger != nil {
		passenger := map[string]any{}
		if b.Passenger.PassengerID != "" {
			passenger["passenger_id"] = b.Passenger.PassengerID
		}
		if b.Passenger.PassengerName != "" {
			passenger["passenger_name"] = b.Passenger.PassengerName
		}
		if b.Passenger.Phone != "" {
			passenger["phone"] = b.Passenger.Phone
		}
		rec[BookingFieldPassenger] = passenger
	}
	return rec
}

func setString(rec query.Record, key, value string) {
	if value != "" {
		rec[key] = value
	}
}

func BookingRecords(bookings []Booking) []query.Record {
	out := make([]query.Record, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Record())
	}
	return out
}

func (b Booking) CanModify() bool { return b.Status.Active() }

func (b Booking) CanCancel() bool { return b.Status.Active() }

// CheckInAvailable reports whether departure is more than one hour and at most 24 hours away.
func (b Booking) CheckInAvailable(now time.Time) bool {
	departure, ok := b.Departure()
	if !ok {
		return false
	}
	until := departure.Sub(now)
	return until > time.Hour && until <= 24*time.Hour
}

func (b Booking) Departure() (time.Time, bool) {
	return query.ParseDate(b.DepartureDateTime)
}

// RefundAmount is only non-zero for cancelled bookings.
func (b Booking) RefundAmount() float64 {
	if NormalizeBookingStatus(string(b.Status)) != BookingStatusCancelled {
		return 0
	}
	return b.Amount * RefundRate
}
