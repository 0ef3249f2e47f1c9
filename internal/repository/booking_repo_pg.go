package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Upsert(ctx context.Context, booking domain.Booking) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_id, flight_id,
		COALESCE(passenger_id, ''), COALESCE(passenger_name, ''), COALESCE(passenger_phone, ''),
		passenger_id IS NOT NULL OR passenger_name IS NOT NULL OR passenger_phone IS NOT NULL,
		origin, destination, booking_date_time, original_departure_date_time, arrival_date_time,
		booking_status, payment_status, amount, currency, class, seat_number, updated_at
		FROM bookings ORDER BY booking_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b             domain.Booking
		passenger     domain.PassengerDetails
		havePassenger bool
	)
	if err := row.Scan(&b.BookingID, &b.FlightID,
		&passenger.PassengerID, &passenger.PassengerName, &passenger.Phone, &havePassenger,
		&b.From, &b.Destination, &b.BookingDateTime, &b.DepartureDateTime, &b.ArrivalDateTime,
		&b.Status, &b.PaymentStatus, &b.Amount, &b.Currency, &b.Class, &b.SeatNumber, &b.UpdatedAt,
	); err != nil {
		return domain.Booking{}, fmt.Errorf("failed to scan booking: %w", err)
	}
	if havePassenger {
		b.Passenger = &passenger
	}
	return b, nil
}

// Upsert stores a booking as received from the upstream source, replacing any previous copy.
func (r *PGBookingRepository) Upsert(ctx context.Context, b domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO bookings (booking_id, flight_id, passenger_id, passenger_name, passenger_phone,
		origin, destination, booking_date_time, original_departure_date_time, arrival_date_time,
		booking_status, payment_status, amount, currency, class, seat_number, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (booking_id) DO UPDATE SET
			flight_id = EXCLUDED.flight_id,
			passenger_id = EXCLUDED.passenger_id,
			passenger_name = EXCLUDED.passenger_name,
			passenger_phone = EXCLUDED.passenger_phone,
			origin = EXCLUDED.origin,
			destination = EXCLUDED.destination,
			booking_date_time = EXCLUDED.booking_date_time,
			original_departure_date_time = EXCLUDED.original_departure_date_time,
			arrival_date_time = EXCLUDED.arrival_date_time,
			booking_status = EXCLUDED.booking_status,
			payment_status = EXCLUDED.payment_status,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			class = EXCLUDED.class,
			seat_number = EXCLUDED.seat_number,
			updated_at = EXCLUDED.updated_at`,
		upsertArgs(b)...,
	); err != nil {
		return fmt.Errorf("failed to upsert booking %s: %w", b.BookingID, err)
	}

	return tx.Commit(ctx)
}

// upsertArgs stores statuses in their normalized form. Passenger columns are
// NULL when the upstream booking has no passenger details.
func upsertArgs(b domain.Booking) []any {
	var passengerID, passengerName, phone *string
	if b.Passenger != nil {
		passengerID, passengerName, phone = &b.Passenger.PassengerID, &b.Passenger.PassengerName, &b.Passenger.Phone
	}
	return []any{
		b.BookingID, b.FlightID, passengerID, passengerName, phone,
		b.From, b.Destination, b.BookingDateTime, b.DepartureDateTime, b.ArrivalDateTime,
		string(domain.NormalizeBookingStatus(string(b.Status))), string(domain.NormalizePaymentStatus(string(b.PaymentStatus))),
		b.Amount, b.Currency, b.Class, b.SeatNumber, b.UpdatedAt,
	}
}

var _ BookingRepository = (*PGBookingRepository)(nil)
