package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with optional fields so a config file can
// override any subset of settings.
type fileConfig struct {
	Database struct {
		Path *string `yaml:"path"`
	} `yaml:"database"`
	Session struct {
		GracePeriodSeconds          *int `yaml:"grace_period_seconds"`
		ActiveIdleThresholdSeconds  *int `yaml:"active_idle_threshold_seconds"`
		ReadingIdleThresholdSeconds *int `yaml:"reading_idle_threshold_seconds"`
		IdleWarnThresholdSeconds    *int `yaml:"idle_warn_threshold_seconds"`
		DefaultDurationSeconds      *int `yaml:"default_duration_seconds"`
		HistoryCap                  *int `yaml:"history_cap"`
	} `yaml:"session"`
	Daemon struct {
		PIDFile *string `yaml:"pid_file"`
	} `yaml:"daemon"`
	Web struct {
		Host *string `yaml:"host"`
		Port *int    `yaml:"port"`
	} `yaml:"web"`
}

// DefaultConfigPath returns ~/.config/focusd/config.yaml, or "" when the
// home directory cannot be resolved.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "focusd", "config.yaml")
}

// LoadFromFile applies settings from a YAML config file onto cfg. A missing
// file leaves cfg untouched and returns nil.
func LoadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Database.Path != nil {
		cfg.Database.Path = *fc.Database.Path
	}

	fileSeconds(fc.Session.GracePeriodSeconds, &cfg.Session.GracePeriod)
	fileSeconds(fc.Session.ActiveIdleThresholdSeconds, &cfg.Session.ActiveIdleThreshold)
	fileSeconds(fc.Session.ReadingIdleThresholdSeconds, &cfg.Session.ReadingIdleThreshold)
	fileSeconds(fc.Session.IdleWarnThresholdSeconds, &cfg.Session.IdleWarnThreshold)
	fileSeconds(fc.Session.DefaultDurationSeconds, &cfg.Session.DefaultDuration)

	if fc.Session.HistoryCap != nil && *fc.Session.HistoryCap > 0 {
		cfg.Session.HistoryCap = *fc.Session.HistoryCap
	}

	if fc.Daemon.PIDFile != nil {
		cfg.Daemon.PIDFile = *fc.Daemon.PIDFile
	}

	if fc.Web.Host != nil {
		cfg.Web.Host = *fc.Web.Host
	}
	if fc.Web.Port != nil {
		cfg.Web.Port = *fc.Web.Port
	}

	return nil
}

func fileSeconds(src *int, dst *time.Duration) {
	if src != nil && *src > 0 {
		*dst = time.Duration(*src) * time.Second
	}
}
