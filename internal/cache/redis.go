package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/airquery/config"
	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsKey  = "cache:flights"
	bookingsKey = "cache:bookings"
)

// RedisCache keeps the unfiltered flight and booking collections. A miss is
// reported as a nil slice with a nil error.
type RedisCache struct {
	client      *redis.Client
	flightsTTL  time.Duration
	bookingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, bookingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL:  flightsTTL,
		bookingsTTL: bookingsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := c.get(ctx, flightsKey, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.set(ctx, flightsKey, flights, c.flightsTTL)
}

func (c *RedisCache) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, bookingsKey, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetBookings(ctx context.Context, bookings []domain.Booking) error {
	return c.set(ctx, bookingsKey, bookings, c.bookingsTTL)
}

func (c *RedisCache) InvalidateBookings(ctx context.Context) error {
	return c.client.Del(ctx, bookingsKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
