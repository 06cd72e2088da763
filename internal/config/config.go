package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/primera-data/primera/internal/platform/logging"
)

// Config carries everything the pipeline binaries need, read from the
// environment once at startup.
type Config struct {
	Env         string `validate:"required,oneof=development staging production"`
	ServiceName string `validate:"required"`
	LogLevel    string `validate:"required,oneof=debug info warn error"`

	DatabaseURL string `validate:"required,url"`

	Seasons []string `validate:"required,min=1,dive,len=4"`

	UnderstatBaseURL string `validate:"required,url"`
	ESPNBaseURL      string `validate:"required,url"`
	DiarioBaseURL    string `validate:"required,url"`

	HTTPTimeout       time.Duration `validate:"required"`
	ScrapeRatePerSec  float64       `validate:"gt=0"`
	ScrapeBurst       int           `validate:"gte=1"`
	VerifyWorkerCount int           `validate:"gte=1"`

	UptraceDSN       string
	PyroscopeAddress string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServiceName: getEnv("SERVICE_NAME", "primera-pipeline"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DB_URL"),

		Seasons: splitList(getEnv("SEASONS", "2023")),

		UnderstatBaseURL: getEnv("UNDERSTAT_BASE_URL", "https://understat.com"),
		ESPNBaseURL:      getEnv("ESPN_BASE_URL", "https://site.api.espn.com"),
		DiarioBaseURL:    getEnv("DIARIO_BASE_URL", "https://resultados.as.com"),

		HTTPTimeout:       getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		ScrapeRatePerSec:  getFloatEnv("SCRAPE_RATE_PER_SEC", 0.5),
		ScrapeBurst:       getIntEnv("SCRAPE_BURST", 1),
		VerifyWorkerCount: getIntEnv("VERIFY_WORKER_COUNT", 4),

		UptraceDSN:       os.Getenv("UPTRACE_DSN"),
		PyroscopeAddress: os.Getenv("PYROSCOPE_ADDRESS"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) LoggingLevel() logging.Level {
	switch c.LogLevel {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getFloatEnv(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
