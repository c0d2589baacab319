package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Session.TickInterval)
	assert.Equal(t, 5*time.Second, cfg.Session.GracePeriod)
	assert.Equal(t, 15*time.Second, cfg.Session.ActiveIdleThreshold)
	assert.Equal(t, 90*time.Second, cfg.Session.ReadingIdleThreshold)
	assert.Equal(t, 25*time.Minute, cfg.Session.DefaultDuration)
	assert.Equal(t, 100, cfg.Session.HistoryCap)
}

func TestDefaultPort(t *testing.T) {
	tests := []struct {
		uid  int
		want int
	}{
		{0, 10000},
		{1000, 11000},
		{55535, 65535},
		{55536, 10000}, // wraps instead of exceeding the port range
		{70000, 24464},
		{-1, 10000},
	}

	for _, tt := range tests {
		got := defaultPort(tt.uid)
		assert.Equalf(t, tt.want, got, "uid %d", tt.uid)
		assert.LessOrEqual(t, got, 65535)
		assert.GreaterOrEqual(t, got, 10000)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick interval", func(c *Config) { c.Session.TickInterval = 0 }},
		{"negative grace period", func(c *Config) { c.Session.GracePeriod = -time.Second }},
		{"zero active threshold", func(c *Config) { c.Session.ActiveIdleThreshold = 0 }},
		{"reading below active", func(c *Config) { c.Session.ReadingIdleThreshold = 5 * time.Second }},
		{"zero warn threshold", func(c *Config) { c.Session.IdleWarnThreshold = 0 }},
		{"zero default duration", func(c *Config) { c.Session.DefaultDuration = 0 }},
		{"zero history cap", func(c *Config) { c.Session.HistoryCap = 0 }},
		{"port out of range", func(c *Config) { c.Web.Port = 70000 }},
		{"empty host", func(c *Config) { c.Web.Host = "" }},
		{"empty pid file", func(c *Config) { c.Daemon.PIDFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FOCUSD_DB_PATH", "/tmp/focus-test.db")
	t.Setenv("FOCUSD_GRACE_PERIOD", "10")
	t.Setenv("FOCUSD_ACTIVE_IDLE_THRESHOLD", "20")
	t.Setenv("FOCUSD_READING_IDLE_THRESHOLD", "120")
	t.Setenv("FOCUSD_IDLE_WARN_THRESHOLD", "600")
	t.Setenv("FOCUSD_DEFAULT_DURATION", "3000")
	t.Setenv("FOCUSD_HISTORY_CAP", "50")
	t.Setenv("FOCUSD_WEB_HOST", "0.0.0.0")
	t.Setenv("FOCUSD_WEB_PORT", "9999")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, "/tmp/focus-test.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Second, cfg.Session.GracePeriod)
	assert.Equal(t, 20*time.Second, cfg.Session.ActiveIdleThreshold)
	assert.Equal(t, 120*time.Second, cfg.Session.ReadingIdleThreshold)
	assert.Equal(t, 600*time.Second, cfg.Session.IdleWarnThreshold)
	assert.Equal(t, 3000*time.Second, cfg.Session.DefaultDuration)
	assert.Equal(t, 50, cfg.Session.HistoryCap)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, 9999, cfg.Web.Port)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("FOCUSD_GRACE_PERIOD", "soon")
	t.Setenv("FOCUSD_HISTORY_CAP", "-5")
	t.Setenv("FOCUSD_WEB_PORT", "99999")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 5*time.Second, cfg.Session.GracePeriod)
	assert.Equal(t, 100, cfg.Session.HistoryCap)
	assert.Equal(t, Default().Web.Port, cfg.Web.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
database:
  path: /var/lib/focusd.db
session:
  grace_period_seconds: 8
  reading_idle_threshold_seconds: 180
  history_cap: 20
web:
  port: 8123
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg := Default()
	require.NoError(t, LoadFromFile(cfg, path))

	assert.Equal(t, "/var/lib/focusd.db", cfg.Database.Path)
	assert.Equal(t, 8*time.Second, cfg.Session.GracePeriod)
	assert.Equal(t, 180*time.Second, cfg.Session.ReadingIdleThreshold)
	assert.Equal(t, 20, cfg.Session.HistoryCap)
	assert.Equal(t, 8123, cfg.Web.Port)

	// Untouched fields keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Session.ActiveIdleThreshold)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Equal(t, Default().Session.GracePeriod, cfg.Session.GracePeriod)
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))
	assert.Error(t, LoadFromFile(Default(), path))
}
