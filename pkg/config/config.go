package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scendash/scendash/pkg/dataset"
)

// Server defaults
const (
	DefaultPort = "8080"
)

// HTTP server timeouts
const (
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ShutdownTimeout    = 30 * time.Second
)

// Fetch and upload limits
const (
	FetchTimeout   = 15 * time.Second
	MaxUploadBytes = 32 << 20 // dataset must fit in memory anyway
)

// Chart defaults
const (
	DefaultChartWidth  = 1024
	DefaultChartHeight = 400
)

// Config is the runtime configuration, loadable from a YAML file. The zero
// config (no file) runs with defaults that match the legacy pipeline,
// including the Region exclusion list.
type Config struct {
	Port string `yaml:"port"`

	// DatasetPath/DatasetURL optionally preload a dataset at startup; the
	// URL is fetched once, not watched.
	DatasetPath string `yaml:"dataset_path"`
	DatasetURL  string `yaml:"dataset_url"`

	// RemoteBaseURL enables the pre-partitioned remote variant: a
	// dimensions manifest plus per-selection point fetches.
	RemoteBaseURL string `yaml:"remote_base_url"`

	// FilterYears includes Year among the filterable dimensions.
	FilterYears bool `yaml:"filter_years"`

	// Exclusions lists values dropped per dimension when that dimension is
	// filtered to "All". Defaults to {Region: [Canada]}.
	Exclusions map[string][]string `yaml:"exclusions"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		FilterYears: true,
		Exclusions:  map[string][]string{string(dataset.Region): {"Canada"}},
	}
}

// fileConfig mirrors Config with pointer/nil-able fields so Load can tell
// "absent from the file" apart from "explicitly set to the zero value".
type fileConfig struct {
	Port          string              `yaml:"port"`
	DatasetPath   string              `yaml:"dataset_path"`
	DatasetURL    string              `yaml:"dataset_url"`
	RemoteBaseURL string              `yaml:"remote_base_url"`
	FilterYears   *bool               `yaml:"filter_years"`
	Exclusions    map[string][]string `yaml:"exclusions"`
}

// Load reads a YAML config file, filling unset fields from Default. An
// explicit `exclusions: {}` clears the default exclusion list; omitting the
// key keeps it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := Default()
	if file.Port != "" {
		cfg.Port = file.Port
	}
	cfg.DatasetPath = file.DatasetPath
	cfg.DatasetURL = file.DatasetURL
	cfg.RemoteBaseURL = file.RemoteBaseURL
	if file.FilterYears != nil {
		cfg.FilterYears = *file.FilterYears
	}
	if file.Exclusions != nil {
		cfg.Exclusions = file.Exclusions
	}
	return cfg, nil
}

// DimensionExclusions converts the string-keyed YAML form to dimension keys.
func (c *Config) DimensionExclusions() map[dataset.Dimension][]string {
	out := make(map[dataset.Dimension][]string, len(c.Exclusions))
	for k, v := range c.Exclusions {
		out[dataset.Dimension(k)] = v
	}
	return out
}

// FilterableDimensions returns the dimensions exposed for filtering.
func (c *Config) FilterableDimensions() []dataset.Dimension {
	if c.FilterYears {
		return dataset.Dimensions
	}
	return []dataset.Dimension{dataset.Region, dataset.Scenario, dataset.Variable}
}
