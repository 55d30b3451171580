package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oleksiit/giftrank/pkg/engine"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Engine   EngineConfig   `yaml:"engine"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig locates corpus inputs and display metadata.
type CatalogConfig struct {
	Path     string `yaml:"path"`     // default corpus JSON for import
	Taxonomy string `yaml:"taxonomy"` // tag taxonomy JSON, optional
	Locale   string `yaml:"locale"`   // BCP 47 tag for string sorting
}

// EngineConfig configures scoring.
type EngineConfig struct {
	Formula    string            `yaml:"formula"` // auto | reviews | interaction
	Weights    engine.Weights    `yaml:"weights"`
	Thresholds engine.Thresholds `yaml:"thresholds"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	RefreshInterval string `yaml:"refresh_interval"`
}

// ParseRefreshInterval returns the corpus refresh interval. Zero means
// the server never reloads on its own.
func (s ServerConfig) ParseRefreshInterval() time.Duration {
	d, err := time.ParseDuration(s.RefreshInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./giftrank.db"},
		Catalog: CatalogConfig{
			Path:   "./gifts.json",
			Locale: "uk",
		},
		Engine: EngineConfig{
			Formula:    "auto",
			Weights:    engine.DefaultWeights(),
			Thresholds: engine.DefaultThresholds(),
		},
		Server: ServerConfig{
			Port:            8080,
			RefreshInterval: "15m",
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if _, ok := engine.ParseFormula(cfg.Engine.Formula); !ok {
		return nil, fmt.Errorf("unknown engine formula %q", cfg.Engine.Formula)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GIFTRANK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GIFTRANK_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("GIFTRANK_LOCALE"); v != "" {
		cfg.Catalog.Locale = v
	}
	if v := os.Getenv("GIFTRANK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
