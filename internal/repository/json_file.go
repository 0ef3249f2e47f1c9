package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Domenick1991/airquery/internal/domain"
)

var ErrReadOnly = errors.New("repository is read-only")

// FileFlightRepository reads flights from a JSON array on disk on every call.
type FileFlightRepository struct {
	path string
}

func NewFileFlightRepository(path string) *FileFlightRepository {
	return &FileFlightRepository{path: path}
}

func (r *FileFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	if err := readJSON(r.path, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *FileFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	flights, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		if flights[i].ID == id {
			return &flights[i], nil
		}
	}
	return nil, domain.ErrFlightNotFound
}

// FileBookingRepository reads bookings either as a plain JSON array or as
// the upstream {"meta": ..., "data": [...]} envelope.
type FileBookingRepository struct {
	path string
}

func NewFileBookingRepository(path string) *FileBookingRepository {
	return &FileBookingRepository{path: path}
}

func (r *FileBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	bookings := make([]domain.Booking, 0)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data []domain.Booking `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", r.path, err)
		}
		if envelope.Data != nil {
			bookings = envelope.Data
		}
		return bookings, nil
	}
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.path, err)
	}
	return bookings, nil
}

func (r *FileBookingRepository) Upsert(ctx context.Context, booking domain.Booking) error {
	return ErrReadOnly
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

var (
	_ FlightRepository  = (*FileFlightRepository)(nil)
	_ BookingRepository = (*FileBookingRepository)(nil)
)
