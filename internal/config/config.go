// Package config loads and validates the estimator configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the landing zone estimator.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Costing  CostingConfig  `yaml:"costing"`
}

type ServerConfig struct {
	Address     string `yaml:"address"`
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metricsPort"`
}

type DatabaseConfig struct {
	// Path to the SQLite file. Empty disables persistence: the server then
	// runs fully in-memory and loses submissions on restart.
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retentionDays"`
}

type PricingConfig struct {
	// Enabled turns the live pricing overlay on. When off, all feature
	// pricing comes from the static catalog.
	Enabled bool `yaml:"enabled"`
	// Location is the AWS Price List location name whose rows are used,
	// e.g. "US East (N. Virginia)".
	Location string `yaml:"location"`
	// CacheTTL is how long a fetched pricing snapshot stays fresh.
	CacheTTL time.Duration `yaml:"cacheTTL"`
	// RefreshSchedule is a cron expression for scheduled refreshes.
	// Empty disables the schedule; manual refresh stays available.
	RefreshSchedule string `yaml:"refreshSchedule"`
}

type CostingConfig struct {
	// MigrationCostPerVM overrides the static per-VM migration rate.
	// Zero keeps the default.
	MigrationCostPerVM float64 `yaml:"migrationCostPerVM"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Address:     "0.0.0.0",
			Port:        8080,
			MetricsPort: 9090,
		},
		Database: DatabaseConfig{
			Path:          "/data/lzplanner.db",
			RetentionDays: 365,
		},
		Pricing: PricingConfig{
			Enabled:         false,
			Location:        "US East (N. Virginia)",
			CacheTTL:        24 * time.Hour,
			RefreshSchedule: "15 4 * * *",
		},
		Costing: CostingConfig{},
	}
	cfg.applyEnvOverrides()
	return cfg
}

// LoadFromFile loads config from a YAML file, overlaying on defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides fills in fields from environment variables. This keeps
// container deployments working with an empty or partial config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LZPLANNER_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("LZPLANNER_PRICING_LOCATION"); v != "" {
		c.Pricing.Location = v
	}
	if os.Getenv("LZPLANNER_PRICING_ENABLED") == "true" {
		c.Pricing.Enabled = true
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.Server.MetricsPort)
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.Port {
		return fmt.Errorf("metrics port %d collides with server port", c.Server.MetricsPort)
	}

	if c.Database.RetentionDays < 0 {
		return fmt.Errorf("retentionDays must be >= 0, got %d", c.Database.RetentionDays)
	}

	if c.Pricing.CacheTTL < 0 {
		return fmt.Errorf("pricing cacheTTL must be >= 0, got %v", c.Pricing.CacheTTL)
	}
	if c.Pricing.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Pricing.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid pricing refreshSchedule %q: %w", c.Pricing.RefreshSchedule, err)
		}
	}

	if c.Costing.MigrationCostPerVM < 0 {
		return fmt.Errorf("migrationCostPerVM must be >= 0, got %.2f", c.Costing.MigrationCostPerVM)
	}

	return nil
}
