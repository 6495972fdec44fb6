package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "CORS_ORIGINS", "RATE_LIMIT", "RATE_WINDOW", "FEE_TABLE_PATH",
		"REDIS_ADDR", "CACHE_TTL", "DATABASE_URL", "ENV", "DEBUG",
	} {
		t.Setenv(k, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.FeeTablePath)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("FEE_TABLE_PATH", "/etc/loanfee/fees.json")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("ENV", "production")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, "/etc/loanfee/fees.json", cfg.FeeTablePath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value, msg string
	}{
		{"RATE_LIMIT", "many", "RATE_LIMIT: invalid integer"},
		{"RATE_LIMIT", "0", "RATE_LIMIT must be positive"},
		{"RATE_WINDOW", "soon", "RATE_WINDOW: invalid duration"},
		{"CACHE_TTL", "10", "CACHE_TTL: invalid duration"},
		{"DEBUG", "maybe", "DEBUG: invalid boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
