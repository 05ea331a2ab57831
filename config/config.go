// Package config provides configuration loading and management for semtax.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtax/export"
	"github.com/c360studio/semtax/reasoner"
)

// Config represents the complete semtax configuration
type Config struct {
	// Documents are glob patterns (** allowed) naming ontology documents,
	// relative to Root.
	Documents []string       `yaml:"documents"`
	Reasoner  ReasonerConfig `yaml:"reasoner"`
	Export    ExportConfig   `yaml:"export"`
	Storage   StorageConfig  `yaml:"storage"`
	NATS      NATSConfig     `yaml:"nats"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Log       LogConfig      `yaml:"log"`

	// Root is the directory document patterns resolve against. It is set by
	// the Loader, never read from YAML.
	Root string `yaml:"-"`
}

// ReasonerConfig configures reasoning passes
type ReasonerConfig struct {
	// SkipSeed leaves the built-in datatype vocabulary out of new ontologies
	SkipSeed bool `yaml:"skip_seed"`
	// MaxRounds bounds a reasoning pass (default: 16)
	MaxRounds int `yaml:"max_rounds"`
	// Rules restricts the pass to the named rules (empty = all)
	Rules []string `yaml:"rules"`
}

// ExportConfig configures RDF output
type ExportConfig struct {
	// Format is turtle, ntriples or jsonld
	Format string `yaml:"format"`
	// Profile is asserted, inferred or all
	Profile string `yaml:"profile"`
	// BaseIRI anchors relative subjects
	BaseIRI string `yaml:"base_iri"`
}

// StorageConfig configures persistence
type StorageConfig struct {
	// Path is the SQLite fact store (empty = no persistence)
	Path string `yaml:"path"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = do not publish)
	URL string `yaml:"url"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reasoner: ReasonerConfig{
			MaxRounds: reasoner.DefaultMaxRounds,
		},
		Export: ExportConfig{
			Format:  string(export.FormatTurtle),
			Profile: string(export.ProfileAll),
			BaseIRI: "https://semtax.dev",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Reasoner.MaxRounds <= 0 {
		return fmt.Errorf("reasoner.max_rounds must be positive")
	}
	known := reasoner.RuleNames()
	for _, r := range c.Reasoner.Rules {
		if !slices.Contains(known, r) {
			return fmt.Errorf("reasoner.rules: unknown rule %q", r)
		}
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if _, err := export.ParseProfile(c.Export.Profile); err != nil {
		return fmt.Errorf("export.profile: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel parses Log.Level. The empty string is info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Documents) > 0 {
		c.Documents = other.Documents
	}

	// Reasoner
	if other.Reasoner.SkipSeed {
		c.Reasoner.SkipSeed = true
	}
	if other.Reasoner.MaxRounds != 0 {
		c.Reasoner.MaxRounds = other.Reasoner.MaxRounds
	}
	if len(other.Reasoner.Rules) > 0 {
		c.Reasoner.Rules = other.Reasoner.Rules
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
	if other.Export.BaseIRI != "" {
		c.Export.BaseIRI = other.Export.BaseIRI
	}

	if other.Storage.Path != "" {
		c.Storage.Path = other.Storage.Path
	}
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
