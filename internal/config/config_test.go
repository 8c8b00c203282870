package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"http://wishesbook.ru", "https://wishesbook.ru"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "gifts", cfg.Database.Name)

	assert.Equal(t, "memory", cfg.Queue.Type)
	assert.Equal(t, "gifts:extraction", cfg.Queue.Key)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "ru-RU", cfg.Browser.Locale)
	assert.Equal(t, "Europe/Moscow", cfg.Browser.TimezoneID)

	assert.Equal(t, 3*time.Second, cfg.Extractor.RenderWait)
	assert.Equal(t, 2*time.Second, cfg.Extractor.FieldWait)
	assert.Equal(t, 1*time.Second, cfg.Extractor.MinDelay)
	assert.Equal(t, 3*time.Second, cfg.Extractor.MaxDelay)

	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("QUEUE_TYPE", "redis")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("EXTRACTOR_RENDER_WAIT", "5s")
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "redis", cfg.Queue.Type)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 5*time.Second, cfg.Extractor.RenderWait)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("BROWSER_HEADLESS", "maybe")
	t.Setenv("EXTRACTOR_FIELD_WAIT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 2*time.Second, cfg.Extractor.FieldWait)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Queue: QueueConfig{Type: "memory"},
			Extractor: ExtractorConfig{
				RenderWait: 3 * time.Second,
				FieldWait:  2 * time.Second,
			},
			Auth: AuthConfig{Secret: "secret", TokenTTL: time.Hour},
		}
	}

	assert.NoError(t, valid().Validate())

	t.Run("missing secret", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown queue type", func(t *testing.T) {
		cfg := valid()
		cfg.Queue.Type = "kafka"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive waits", func(t *testing.T) {
		cfg := valid()
		cfg.Extractor.RenderWait = 0
		assert.Error(t, cfg.Validate())
	})
}
