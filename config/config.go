package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	HTTPAddr    string
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration

	// Fee table; empty means the embedded default
	FeeTablePath string

	// Storage; empty values fall back to in-memory implementations
	RedisAddr   string
	CacheTTL    time.Duration
	DatabaseURL string

	Env   string
	Debug bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	// Non-fatal: the environment may be provided by the process manager.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:     getEnvDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:  splitList(getEnvDefault("CORS_ORIGINS", "*")),
		FeeTablePath: os.Getenv("FEE_TABLE_PATH"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Env:          getEnvDefault("ENV", "development"),
	}

	var err error
	if cfg.RateLimit, err = getIntEnv("RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.RateWindow, err = getDurationEnv("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDurationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getBoolEnv("DEBUG", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, val)
	}
	return i, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, val)
	}
	return d, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, val)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
