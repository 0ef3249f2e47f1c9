package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline, flight_number, origin, destination, departure_time, arrival_time,
	duration_minutes, stops, price, fare_class, discount, aircraft, baggage, on_time_performance,
	features, layovers`

// List returns flights in storage order; ordering for views is done by the query engine.
func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var (
		f        domain.Flight
		layovers []byte
	)
	if err := row.Scan(
		&f.ID, &f.Airline, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime,
		&f.DurationMinutes, &f.Stops, &f.Price, &f.FareClass, &f.Discount, &f.Aircraft, &f.Baggage, &f.OnTimePerformance,
		&f.Features, &layovers,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan flight: %w", err)
	}
	if len(layovers) > 0 {
		if err := json.Unmarshal(layovers, &f.Layovers); err != nil {
			return nil, fmt.Errorf("failed to decode layovers of flight %s: %w", f.ID, err)
		}
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
