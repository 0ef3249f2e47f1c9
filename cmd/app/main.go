package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airquery/config"
	"github.com/Domenick1991/airquery/internal/bootstrap"
	"github.com/Domenick1991/airquery/internal/cache"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
	"github.com/Domenick1991/airquery/internal/repository"
	"github.com/Domenick1991/airquery/internal/service/booking"
	"github.com/Domenick1991/airquery/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		appLog.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics("airquery", registry)

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL(), cfg.Cache.BookingsTTL())
	defer redisCache.Close()

	flightService := flights.NewFlightService(
		repository.NewFlightRepository(pool),
		redisCache,
		flights.WithLogger(appLog.With("service", "flights")),
		flights.WithMetrics(m),
	)
	bookingService := booking.NewBookingService(
		repository.NewBookingRepository(pool),
		redisCache,
		booking.WithLogger(appLog.With("service", "bookings")),
		booking.WithMetrics(m),
	)

	if err := bootstrap.Run(ctx, cfg, appLog, registry, flightService, bookingService); err != nil {
		appLog.Fatal("server error", "error", err)
	}
}
