package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	ClassifierURL       string
	ClassifierTimeout   time.Duration
	ConfidenceThreshold float64
	HeartsCap           int
	HeartRegenInterval  time.Duration
	WorkerCount         int
	WorkerQueueSize     int
	SessionTTL          time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:senya.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		ClassifierURL:       envOr("CLASSIFIER_URL", "http://localhost:8501"),
		ClassifierTimeout:   envDurationOr("CLASSIFIER_TIMEOUT", 10*time.Second),
		ConfidenceThreshold: envFloatOr("CONFIDENCE_THRESHOLD", 0.70),
		HeartsCap:           envIntOr("HEARTS_CAP", 5),
		HeartRegenInterval:  envDurationOr("HEART_REGEN_INTERVAL", 4*time.Hour),
		WorkerCount:         envIntOr("WORKER_COUNT", 2),
		WorkerQueueSize:     envIntOr("WORKER_QUEUE_SIZE", 32),
		SessionTTL:          envDurationOr("SESSION_TTL", 24*time.Hour),
	}
}

// Validate checks that the configuration is usable, collecting every
// problem into a single error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.ClassifierURL == "" {
		problems = append(problems, "CLASSIFIER_URL cannot be empty")
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold >= 1 {
		problems = append(problems, "CONFIDENCE_THRESHOLD must be between 0 and 1 exclusive")
	}
	if c.HeartsCap <= 0 {
		problems = append(problems, "HEARTS_CAP must be positive")
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.WorkerQueueSize <= 0 {
		problems = append(problems, "WORKER_QUEUE_SIZE must be positive")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, "LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
