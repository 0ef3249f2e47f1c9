package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airquery/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute, 30*time.Second)
	defer c.Close()

	assert.Equal(t, time.Minute, c.flightsTTL)
	assert.Equal(t, 30*time.Second, c.bookingsTTL)
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	// Nothing listens on port 1, so every call fails fast.
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	flights, err := c.GetFlights(ctx)
	assert.Error(t, err)
	assert.Nil(t, flights)
	assert.Error(t, c.InvalidateBookings(ctx))
}
