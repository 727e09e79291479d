package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "Asia/Taipei", cfg.Market.Timezone)
	assert.Equal(t, "09:00", cfg.Market.Open)
	assert.Equal(t, "13:30", cfg.Market.Close)
	assert.Equal(t, "yahoo", cfg.Fetch.Provider)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Fetch.BaseURL)
	assert.Equal(t, 3, cfg.Fetch.Retries)
	assert.Equal(t, 60, cfg.Fetch.RequestsPerMinute)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "recent", cfg.Analysis.SupportPolicy)
	assert.Equal(t, 4, cfg.Analysis.MaxConcurrency)
	assert.Equal(t, 4900, cfg.Reply.MaxRunes)
	assert.Equal(t, "@every 10m", cfg.KeepAlive.Cron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
market:
  open: "09:05"
fetch:
  retries: 5
  timeout: 10s
analysis:
  support_policy: bullish
keepalive:
  url: https://example.onrender.com/render_wake_up
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "09:05", cfg.Market.Open)
	assert.Equal(t, 5, cfg.Fetch.Retries)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "bullish", cfg.Analysis.SupportPolicy)
	assert.Equal(t, "https://example.onrender.com/render_wake_up", cfg.KeepAlive.URL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nline:\n  channel_secret: from-file\n")
	t.Setenv("PORT", "9090")
	t.Setenv("LINE_CHANNEL_SECRET", "from-env")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Line.ChannelSecret)
	assert.Equal(t, "token", cfg.Line.ChannelAccessToken)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestWarnings_MissingCredentials(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Line.ChannelAccessToken = ""
	cfg.Line.ChannelSecret = ""

	assert.Len(t, cfg.Warnings(), 2)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad policy", func(c *Config) { c.Analysis.SupportPolicy = "both" }},
		{"bad provider", func(c *Config) { c.Fetch.Provider = "bloomberg" }},
		{"bad timezone", func(c *Config) { c.Market.Timezone = "Mars/Olympus" }},
		{"bad open clock", func(c *Config) { c.Market.Open = "9am" }},
		{"open after close", func(c *Config) { c.Market.Open = "14:00" }},
		{"zero retries", func(c *Config) { c.Fetch.Retries = 0 }},
		{"reply too long", func(c *Config) { c.Reply.MaxRunes = 5000 }},
		{"rest without base url", func(c *Config) { c.Fetch.Provider = "rest"; c.Fetch.BaseURL = "" }},
		{"bad keepalive url", func(c *Config) { c.KeepAlive.URL = "not a url" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
