package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "TRAVELPOINTS"

	// DevJWTSigningKey is only accepted outside production.
	DevJWTSigningKey = "dev-secret-key-change-in-production"
)

// Server captures process level configuration for the API server and CLI.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	// DatabaseURL selects Postgres stores; empty means in-memory stores.
	DatabaseURL    string
	DatabaseDriver string
	SeedOnStart    bool

	Redis   RedisConfig
	JWT     JWTConfig
	Kafka   KafkaConfig
	Tracing TracingConfig

	CatalogueCacheTTL      time.Duration
	RateLimitAuthPerMinute int
	DefaultHomeRegion      string
}

// RedisConfig configures the shared Redis client. Empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
}

// KafkaConfig configures travel-log event publishing. No brokers means events
// are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// TracingConfig selects the span exporter. Disabled tracing keeps the no-op
// provider.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Exporter    string // stdout or otlp
	Endpoint    string // otlp gRPC endpoint
	SampleRatio float64
}

func (s Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// Validate rejects settings that are only safe in development.
func (s Server) Validate() error {
	if s.IsProduction() && s.JWT.SigningKey == DevJWTSigningKey {
		return errors.New("JWT signing key must be set in production")
	}
	if s.JWT.TTL <= 0 {
		return errors.New("JWT TTL must be positive")
	}
	if s.RateLimitAuthPerMinute <= 0 {
		return errors.New("auth rate limit must be positive")
	}
	if s.Tracing.SampleRatio < 0 || s.Tracing.SampleRatio > 1 {
		return errors.New("tracing sample ratio must be between 0 and 1")
	}
	return nil
}

// NewViper returns a viper instance reading TRAVELPOINTS_* variables with
// every default registered. Callers may bind flags on top of it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_url", "")
	v.SetDefault("database_driver", "postgres")
	v.SetDefault("seed_on_start", false)

	v.SetDefault("redis_url", "")
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_min_idle_conns", 2)
	v.SetDefault("redis_dial_timeout", 5*time.Second)
	v.SetDefault("redis_read_timeout", 3*time.Second)
	v.SetDefault("redis_write_timeout", 3*time.Second)

	v.SetDefault("jwt_signing_key", DevJWTSigningKey)
	v.SetDefault("jwt_issuer", "travelpoints")
	v.SetDefault("jwt_ttl", 7*24*time.Hour)

	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "travel-log-events")

	v.SetDefault("tracing_enabled", false)
	v.SetDefault("tracing_service_name", "travelpoints")
	v.SetDefault("tracing_exporter", "stdout")
	v.SetDefault("otlp_endpoint", "localhost:4317")
	v.SetDefault("tracing_sample_ratio", 1.0)

	v.SetDefault("catalogue_cache_ttl", 10*time.Minute)
	v.SetDefault("rate_limit_auth_per_minute", 20)
	v.SetDefault("default_home_region", "Europe")
	return v
}

// FromEnv loads an optional .env file and builds a Server config from the
// environment so main stays lean.
func FromEnv() Server {
	_ = godotenv.Load()
	return Load(NewViper())
}

// Load builds a Server config from v.
func Load(v *viper.Viper) Server {
	return Server{
		Addr:           v.GetString("addr"),
		Environment:    v.GetString("environment"),
		LogLevel:       v.GetString("log_level"),
		DatabaseURL:    v.GetString("database_url"),
		DatabaseDriver: v.GetString("database_driver"),
		SeedOnStart:    v.GetBool("seed_on_start"),
		Redis: RedisConfig{
			URL:          v.GetString("redis_url"),
			PoolSize:     v.GetInt("redis_pool_size"),
			MinIdleConns: v.GetInt("redis_min_idle_conns"),
			DialTimeout:  v.GetDuration("redis_dial_timeout"),
			ReadTimeout:  v.GetDuration("redis_read_timeout"),
			WriteTimeout: v.GetDuration("redis_write_timeout"),
		},
		JWT: JWTConfig{
			SigningKey: v.GetString("jwt_signing_key"),
			Issuer:     v.GetString("jwt_issuer"),
			TTL:        v.GetDuration("jwt_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing_enabled"),
			ServiceName: v.GetString("tracing_service_name"),
			Exporter:    strings.ToLower(v.GetString("tracing_exporter")),
			Endpoint:    v.GetString("otlp_endpoint"),
			SampleRatio: v.GetFloat64("tracing_sample_ratio"),
		},
		CatalogueCacheTTL:      v.GetDuration("catalogue_cache_ttl"),
		RateLimitAuthPerMinute: v.GetInt("rate_limit_auth_per_minute"),
		DefaultHomeRegion:      v.GetString("default_home_region"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
