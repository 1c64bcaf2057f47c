// Package config loads the application configuration: the reusable core
// sections plus the database connection settings.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/adbot/core/config"
	coredatabase "github.com/m3rciful/adbot/core/database"
)

// Config aggregates core bot settings and the Postgres connection.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeDatabase(&cfg.Database); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

func normalizeDatabase(db *coredatabase.Config) error {
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.Port == "" {
		db.Port = "5432"
	}
	if db.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if db.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.MaxConnections <= 0 {
		db.MaxConnections = 8
	}
	return nil
}
