package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables.
// Environment variables override file and default values. A .env file in the
// working directory is honored when present.
func LoadFromEnv(cfg *Config) {
	_ = godotenv.Load() // absence of .env is not an error

	if dbPath := os.Getenv("FOCUSD_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	envSeconds("FOCUSD_GRACE_PERIOD", &cfg.Session.GracePeriod)
	envSeconds("FOCUSD_ACTIVE_IDLE_THRESHOLD", &cfg.Session.ActiveIdleThreshold)
	envSeconds("FOCUSD_READING_IDLE_THRESHOLD", &cfg.Session.ReadingIdleThreshold)
	envSeconds("FOCUSD_IDLE_WARN_THRESHOLD", &cfg.Session.IdleWarnThreshold)
	envSeconds("FOCUSD_DEFAULT_DURATION", &cfg.Session.DefaultDuration)

	if cap := os.Getenv("FOCUSD_HISTORY_CAP"); cap != "" {
		if n, err := strconv.Atoi(cap); err == nil && n > 0 {
			cfg.Session.HistoryCap = n
		}
	}

	if pidFile := os.Getenv("FOCUSD_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if webHost := os.Getenv("FOCUSD_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("FOCUSD_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

func envSeconds(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}

// New creates a new Config with default values, then applies the optional
// config file and environment overrides, in that order.
func New() *Config {
	cfg := Default()
	if path := DefaultConfigPath(); path != "" {
		_ = LoadFromFile(cfg, path) // missing file is fine
	}
	LoadFromEnv(cfg)
	return cfg
}
