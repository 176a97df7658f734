package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_PRETTY", "DATA_DIR", "STORAGE", "REDIS_ADDR",
		"GEMINI_API_KEY", "GEMINI_MODEL", "ADVISOR_TIMEOUT", "ADVICE_CACHE_TTL",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "RETENTION_DAYS", "RETENTION_SCHEDULE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.AdvisorTimeout)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30*24*time.Hour, cfg.Retention())
	assert.Equal(t, "@daily", cfg.RetentionSchedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("STORAGE", "sqlite")
	t.Setenv("ADVICE_CACHE_TTL", "2h")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, filepath.Join(dir, "calculations.db"), cfg.DatabasePath())
	assert.Equal(t, 2*time.Hour, cfg.AdviceCacheTTL)
	assert.Equal(t, 50, cfg.RateLimitRequests)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "eighty")
	t.Setenv("ADVISOR_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.AdvisorTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:              8080,
		LogLevel:          "info",
		Storage:           StorageMemory,
		RateLimitRequests: 5,
		RateLimitWindow:   time.Minute,
		RetentionDays:     30,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"storage", func(c *Config) { c.Storage = "postgres" }},
		{"rate limit", func(c *Config) { c.RateLimitRequests = 0 }},
		{"window", func(c *Config) { c.RateLimitWindow = 0 }},
		{"retention", func(c *Config) { c.RetentionDays = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}
