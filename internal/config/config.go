package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Auth struct {
		// Secret verifies bearer tokens issued elsewhere. Empty disables
		// the auth middleware (development).
		Secret string `yaml:"secret"`
	} `yaml:"auth"`

	Storage struct {
		// Driver is one of memory, sqlite3, postgres, redis.
		Driver    string `yaml:"driver"`
		DSN       string `yaml:"dsn"`
		RedisAddr string `yaml:"redis_addr"`
	} `yaml:"storage"`

	Sync struct {
		// AutoSyncIntervalSeconds is the single source of truth for the
		// fullSync cadence.
		AutoSyncIntervalSeconds    int `yaml:"auto_sync_interval_seconds"`
		DigestHour                 int `yaml:"digest_hour"`
		OverdueScanIntervalMinutes int `yaml:"overdue_scan_interval_minutes"`
		OverdueAgeHours            int `yaml:"overdue_age_hours"`
	} `yaml:"sync"`
}

// Load reads the yaml configuration file and applies defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = 9090
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.DSN == "" {
		c.Storage.DSN = "launchops.db"
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = "localhost:6379"
	}
	if c.Sync.AutoSyncIntervalSeconds == 0 {
		c.Sync.AutoSyncIntervalSeconds = 30
	}
	if c.Sync.DigestHour == 0 {
		c.Sync.DigestHour = 8
	}
	if c.Sync.OverdueScanIntervalMinutes == 0 {
		c.Sync.OverdueScanIntervalMinutes = 60
	}
	if c.Sync.OverdueAgeHours == 0 {
		c.Sync.OverdueAgeHours = 24
	}
}

// AutoSyncInterval returns the fullSync cadence as a duration.
func (c *Config) AutoSyncInterval() time.Duration {
	return time.Duration(c.Sync.AutoSyncIntervalSeconds) * time.Second
}

// OverdueScanInterval returns the overdue scan cadence as a duration.
func (c *Config) OverdueScanInterval() time.Duration {
	return time.Duration(c.Sync.OverdueScanIntervalMinutes) * time.Minute
}

// OverdueAge returns how long a request may sit pending before it is
// reported overdue.
func (c *Config) OverdueAge() time.Duration {
	return time.Duration(c.Sync.OverdueAgeHours) * time.Hour
}
