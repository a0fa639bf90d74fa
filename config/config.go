// Package config provides configuration loading and management for rfamtype.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete rfamtype configuration
type Config struct {
	Inputs  InputsConfig  `yaml:"inputs"`
	Output  OutputConfig  `yaml:"output"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// InputsConfig locates the local input files for a classification run
type InputsConfig struct {
	// Families is the path to the Rfam family dump (tab-delimited)
	Families string `yaml:"families"`
	// Links is the path to the Rfam database_link dump
	Links string `yaml:"links"`
	// Ontology is the path to the Sequence Ontology OBO file
	Ontology string `yaml:"ontology"`
	// Curation is the path to the curated-overrides JSON file
	Curation string `yaml:"curation"`
}

// OutputConfig controls where and how result rows are written
type OutputConfig struct {
	// Path is the output file (empty = stdout)
	Path string `yaml:"path"`
	// Format is the output format: csv or tsv
	Format string `yaml:"format"`
}

// FetchConfig configures the remote sources for the fetch command
type FetchConfig struct {
	// Dir is the local directory downloads are written to
	Dir string `yaml:"dir"`
	// Timeout is the maximum time to wait per download
	Timeout time.Duration `yaml:"timeout"`
	// FamilyURL is the remote family dump
	FamilyURL string `yaml:"family_url"`
	// LinkURL is the remote database_link dump
	LinkURL string `yaml:"link_url"`
	// OntologyURL is the remote OBO ontology file
	OntologyURL string `yaml:"ontology_url"`
}

// MetricsConfig configures the optional Pushgateway delivery
type MetricsConfig struct {
	// Gateway is the Pushgateway base URL (empty = metrics push disabled)
	Gateway string `yaml:"gateway"`
	// Job is the Pushgateway job name
	Job string `yaml:"job"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format is the handler format (text, json)
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Inputs: InputsConfig{
			Families: "data/family.txt",
			Links:    "data/database_link.txt",
			Ontology: "data/so.obo",
			Curation: "data/curation.json",
		},
		Output: OutputConfig{
			Path:   "", // stdout
			Format: "csv",
		},
		Fetch: FetchConfig{
			Dir:         "data",
			Timeout:     5 * time.Minute,
			FamilyURL:   "https://ftp.ebi.ac.uk/pub/databases/Rfam/CURRENT/database_files/family.txt.gz",
			LinkURL:     "https://ftp.ebi.ac.uk/pub/databases/Rfam/CURRENT/database_files/database_link.txt.gz",
			OntologyURL: "https://raw.githubusercontent.com/The-Sequence-Ontology/SO-Ontologies/master/Ontology_Files/so.obo",
		},
		Metrics: MetricsConfig{
			Gateway: "", // Disabled
			Job:     "rfamtype",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Inputs.Families == "" {
		return fmt.Errorf("inputs.families is required")
	}
	if c.Inputs.Links == "" {
		return fmt.Errorf("inputs.links is required")
	}
	if c.Inputs.Ontology == "" {
		return fmt.Errorf("inputs.ontology is required")
	}
	if c.Inputs.Curation == "" {
		return fmt.Errorf("inputs.curation is required")
	}
	if c.Output.Format != "csv" && c.Output.Format != "tsv" {
		return fmt.Errorf("output.format must be csv or tsv")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json")
	}
	if c.Metrics.Gateway != "" && c.Metrics.Job == "" {
		return fmt.Errorf("metrics.job is required when metrics.gateway is set")
	}
	return nil
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

	// Inputs
	if other.Inputs.Families != "" {
		c.Inputs.Families = other.Inputs.Families
	}
	if other.Inputs.Links != "" {
		c.Inputs.Links = other.Inputs.Links
	}
	if other.Inputs.Ontology != "" {
		c.Inputs.Ontology = other.Inputs.Ontology
	}
	if other.Inputs.Curation != "" {
		c.Inputs.Curation = other.Inputs.Curation
	}

	// Output
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// Fetch
	if other.Fetch.Dir != "" {
		c.Fetch.Dir = other.Fetch.Dir
	}
	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.Fetch.FamilyURL != "" {
		c.Fetch.FamilyURL = other.Fetch.FamilyURL
	}
	if other.Fetch.LinkURL != "" {
		c.Fetch.LinkURL = other.Fetch.LinkURL
	}
	if other.Fetch.OntologyURL != "" {
		c.Fetch.OntologyURL = other.Fetch.OntologyURL
	}

	// Metrics
	if other.Metrics.Gateway != "" {
		c.Metrics.Gateway = other.Metrics.Gateway
	}
	if other.Metrics.Job != "" {
		c.Metrics.Job = other.Metrics.Job
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}
