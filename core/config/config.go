package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel     OTelConfig
	Redis    RedisConfig
	Resolver ResolverConfig
	Poller   PollerConfig
	Probe    ProbeConfig
	Env      string
	Port     string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
}

// ResolverConfig configures the external text-understanding service used for
// name→identifier resolution and reply suggestions.
type ResolverConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration
}

type PollerConfig struct {
	Interval time.Duration
}

type ProbeConfig struct {
	Timeout    time.Duration
	SampleSize int
}

type ServiceType string

const (
	ServiceTypeServer   ServiceType = "server"
	ServiceTypeImporter ServiceType = "importer"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.importer for the import CLI
//
// Falls back to .env if the service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("COURIER_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:  getEnv("COURIER_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "courier"),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "courier"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Resolver: ResolverConfig{
			APIKey:      getEnv("RESOLVER_API_KEY", ""),
			BaseURL:     getEnv("RESOLVER_BASE_URL", ""),
			Model:       getEnv("RESOLVER_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvInt("RESOLVER_MAX_TOKENS", 1024),
			MaxAttempts: getEnvInt("RESOLVER_MAX_ATTEMPTS", 3),
			RetryDelay:  getEnvDuration("RESOLVER_RETRY_DELAY", 2*time.Second),
			Timeout:     getEnvDuration("RESOLVER_TIMEOUT", 20*time.Second),
		},
		Poller: PollerConfig{
			Interval: getEnvDuration("DIRECTORY_POLL_INTERVAL", 30*time.Second),
		},
		Probe: ProbeConfig{
			Timeout:    getEnvDuration("HEALTH_PROBE_TIMEOUT", 5*time.Second),
			SampleSize: getEnvInt("HEALTH_PROBE_SAMPLE_SIZE", 5),
		},
	}

	if cfg.Redis.URL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c ResolverConfig) Enabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
