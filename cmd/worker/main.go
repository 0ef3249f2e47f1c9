package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airquery/config"
	"github.com/Domenick1991/airquery/internal/bookingsource"
	"github.com/Domenick1991/airquery/internal/bootstrap"
	"github.com/Domenick1991/airquery/internal/cache"
	"github.com/Domenick1991/airquery/internal/kafka"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
	"github.com/Domenick1991/airquery/internal/repository"
	"github.com/Domenick1991/airquery/internal/service/syncer"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const consumerRestartDelay = 5 * time.Second

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

	workerLog, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer workerLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		workerLog.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, workerLog.With("component", "producer"))
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		workerLog.Warn("kafka not reachable yet", "error", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL(), cfg.Cache.BookingsTTL())
	defer redisCache.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics("airquery_worker", registry)
	go func() {
		if err := bootstrap.RunMetrics(ctx, cfg.Worker.MetricsAddress, registry, workerLog); err != nil {
			workerLog.Error("metrics server failed", "error", err)
		}
	}()

	bookingSync := syncer.NewSyncer(bookingsource.NewClient(cfg.BookingSource), producer, cfg.Kafka.BookingEventsTopic, workerLog.With("component", "syncer"), m)
	ingestor := syncer.NewIngestor(repository.NewBookingRepository(pool), redisCache, workerLog.With("component", "ingestor"))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, workerLog.With("component", "consumer"))
	defer consumer.Close()

	go func() {
		for {
			err := consumer.Consume(ctx, ingestor.Handle)
			if ctx.Err() != nil {
				return
			}
			workerLog.Error("consumer reader failed, restarting", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(consumerRestartDelay):
			}
		}
	}()

	runSync := func() {
		published, err := bookingSync.Sync(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			workerLog.Error("booking sync failed", "published", published, "error", err)
		}
	}
	runSync()

	ticker := time.NewTicker(cfg.Worker.SyncInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runSync()
		case <-ctx.Done():
			workerLog.Info("shutting down worker")
			return
		}
	}
}
