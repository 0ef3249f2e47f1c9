package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	GRPC          GRPCConfig          `yaml:"grpc"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Cache         CacheConfig         `yaml:"cache"`
	BookingSource BookingSourceConfig `yaml:"booking_source"`
	Worker        WorkerConfig        `yaml:"worker"`
	Log           LogConfig           `yaml:"log"`
}

type HTTPConfig struct {
	Address            string  `yaml:"address"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CacheConfig struct {
	FlightsTTLSeconds  int `yaml:"flights_ttl_seconds"`
	BookingsTTLSeconds int `yaml:"bookings_ttl_seconds"`
}

func (c CacheConfig) FlightsTTL() time.Duration {
	return time.Duration(c.FlightsTTLSeconds) * time.Second
}

func (c CacheConfig) BookingsTTL() time.Duration {
	return time.Duration(c.BookingsTTLSeconds) * time.Second
}

// BookingSourceConfig points at the upstream booking list API.
type BookingSourceConfig struct {
	URL            string `yaml:"url"`
	PerPage        int    `yaml:"per_page"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (b BookingSourceConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type WorkerConfig struct {
	SyncIntervalMinutes int    `yaml:"sync_interval_minutes"`
	MetricsAddress      string `yaml:"metrics_address"`
}

func (w WorkerConfig) SyncInterval() time.Duration {
	return time.Duration(w.SyncIntervalMinutes) * time.Minute
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults replaces empty values, and numbers that are zero or negative.
func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimitPerSecond <= 0 {
		c.HTTP.RateLimitPerSecond = 20
	}
	if c.HTTP.RateLimitBurst <= 0 {
		c.HTTP.RateLimitBurst = 40
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Database.Port <= 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.BookingEventsTopic == "" {
		c.Kafka.BookingEventsTopic = "booking-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "airquery-worker"
	}
	if c.Cache.FlightsTTLSeconds <= 0 {
		c.Cache.FlightsTTLSeconds = 60
	}
	if c.Cache.BookingsTTLSeconds <= 0 {
		c.Cache.BookingsTTLSeconds = 30
	}
	if c.BookingSource.PerPage <= 0 {
		c.BookingSource.PerPage = 1000
	}
	if c.BookingSource.TimeoutSeconds <= 0 {
		c.BookingSource.TimeoutSeconds = 10
	}
	if c.Worker.SyncIntervalMinutes <= 0 {
		c.Worker.SyncIntervalMinutes = 5
	}
	if c.Worker.MetricsAddress == "" {
		c.Worker.MetricsAddress = ":9100"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
