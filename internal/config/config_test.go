package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walink/walink/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
gateway:
  port: "8080"
  api_key: "secret"

whatsapp:
  session_path: "/var/lib/walink/session.db"
  test_mode: true

webhook:
  url: "http://callbacks:5000/whatsapp-webhook"

media:
  dir: "/data/media"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Gateway.Port)
	assert.Equal(t, "secret", cfg.Gateway.APIKey)
	assert.Equal(t, "/var/lib/walink/session.db", cfg.WhatsApp.SessionPath)
	assert.True(t, cfg.WhatsApp.TestMode)
	assert.Equal(t, "http://callbacks:5000/whatsapp-webhook", cfg.Webhook.URL)
	assert.Equal(t, "/data/media", cfg.Media.Dir)

	// Unset values fall back to defaults.
	assert.Equal(t, "5000", cfg.Receiver.Port)
	assert.Equal(t, int64(50*1024*1024), cfg.Receiver.MaxBodyBytes)
	assert.Equal(t, 30, cfg.Webhook.Timeout)
	assert.Equal(t, uint32(5), cfg.Webhook.CircuitBreaker.ConsecutiveFails)
	assert.Equal(t, 0.6, cfg.Webhook.CircuitBreaker.FailureRatio)
	assert.Equal(t, 100, cfg.Middleware.RateLimit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
gateway:
  api_key: "secret"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Gateway.Port)
	assert.Equal(t, 10, cfg.Gateway.ReadTimeout)
	assert.Equal(t, ".walink/session.db", cfg.WhatsApp.SessionPath)
	assert.False(t, cfg.WhatsApp.TestMode)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, "./received_media", cfg.Media.Dir)
	assert.True(t, cfg.Middleware.EnableCORS)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}
