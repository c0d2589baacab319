package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Session engine configuration
	Session SessionConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Web server configuration
	Web WebConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// SessionConfig holds the focus-session engine knobs
type SessionConfig struct {
	TickInterval         time.Duration // Cadence of classification ticks
	GracePeriod          time.Duration // Start-of-session window force-classified focused
	ActiveIdleThreshold  time.Duration // Idle tolerance in active mode
	ReadingIdleThreshold time.Duration // Idle tolerance in reading mode
	IdleWarnThreshold    time.Duration // Unbroken idle before the warning fires
	DefaultDuration      time.Duration // Target when a start request omits it
	HistoryCap           int           // Retained session records, newest first
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/focusd/focusd.db
		},
		Session: SessionConfig{
			TickInterval:         time.Second,
			GracePeriod:          5 * time.Second,
			ActiveIdleThreshold:  15 * time.Second,
			ReadingIdleThreshold: 90 * time.Second,
			IdleWarnThreshold:    300 * time.Second,
			DefaultDuration:      1500 * time.Second, // 25 minutes
			HistoryCap:           100,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/focusd-%d.pid", os.Getuid()),
		},
		Web: WebConfig{
			Host: "localhost",
			Port: defaultPort(os.Getuid()),
		},
	}
}

// defaultPort derives a per-user port so daemons of different users do not
// collide, wrapping large UIDs back into the valid range.
func defaultPort(uid int) int {
	if uid < 0 {
		uid = 0
	}
	return 10000 + uid%55536
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Session.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.Session.TickInterval)
	}

	if c.Session.GracePeriod < 0 {
		return fmt.Errorf("grace period cannot be negative")
	}

	if c.Session.ActiveIdleThreshold <= 0 || c.Session.ReadingIdleThreshold <= 0 {
		return fmt.Errorf("idle thresholds must be positive")
	}

	if c.Session.ReadingIdleThreshold < c.Session.ActiveIdleThreshold {
		return fmt.Errorf("reading idle threshold (%v) cannot be below active threshold (%v)",
			c.Session.ReadingIdleThreshold, c.Session.ActiveIdleThreshold)
	}

	if c.Session.IdleWarnThreshold <= 0 {
		return fmt.Errorf("idle warning threshold must be positive")
	}

	if c.Session.DefaultDuration <= 0 {
		return fmt.Errorf("default session duration must be positive")
	}

	if c.Session.HistoryCap < 1 {
		return fmt.Errorf("history cap must be at least 1, got %d", c.Session.HistoryCap)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Session:
    Tick Interval: %v
    Grace Period: %v
    Active Idle Threshold: %v
    Reading Idle Threshold: %v
    Idle Warning Threshold: %v
    Default Duration: %v
    History Cap: %d
  Daemon:
    PID File: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Session.TickInterval,
		c.Session.GracePeriod,
		c.Session.ActiveIdleThreshold,
		c.Session.ReadingIdleThreshold,
		c.Session.IdleWarnThreshold,
		c.Session.DefaultDuration,
		c.Session.HistoryCap,
		c.Daemon.PIDFile,
		c.Web.Host,
		c.Web.Port,
	)
}
