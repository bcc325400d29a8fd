package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Origin        string
	ReferenceYear int
	Debug         bool
	LogLevel      string
	CSVOutputPath string

	ChromeBin      string
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PageTimeoutSec int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Origin:        getEnv("ORIGIN", "https://www.amazon.com"),
		ReferenceYear: getEnvInt("REFERENCE_YEAR", 2023),
		Debug:         getEnvBool("DEBUG", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", ""),

		ChromeBin:      getEnv("CHROME_BIN", ""),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 2),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		PageTimeoutSec: getEnvInt("PAGE_TIMEOUT_SEC", 60),
	}
}

// Validate reports settings that would make a run meaningless.
// The origin itself is checked where it is parsed, by the extractor.
func (c *Config) Validate() error {
	var errs []error
	if c.ReferenceYear <= 0 {
		errs = append(errs, fmt.Errorf("REFERENCE_YEAR must be positive, got %d", c.ReferenceYear))
	}
	if c.MaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("MAX_CONCURRENCY must be positive, got %d", c.MaxConcurrency))
	}
	if c.MaxRetries <= 0 {
		errs = append(errs, fmt.Errorf("MAX_RETRIES must be positive, got %d", c.MaxRetries))
	}
	if c.RateLimitMs < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_MS must not be negative, got %d", c.RateLimitMs))
	}
	if c.PageTimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("PAGE_TIMEOUT_SEC must be positive, got %d", c.PageTimeoutSec))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PageTimeout returns the per-page load timeout.
func (c *Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
