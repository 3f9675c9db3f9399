package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects the tunable parts of a run. Everything has a default so a
// config file is only needed to override.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Charts  ChartConfig   `yaml:"charts"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig controls annotation file discovery and record parsing.
type ScanConfig struct {
	Extension    string `yaml:"extension"`     // annotation file suffix, e.g. ".gbk"
	RecordMarker string `yaml:"record_marker"` // keyword opening a feature record
}

// ChartConfig controls the rendered figures.
type ChartConfig struct {
	TopN          int     `yaml:"top_n"` // bars in the ranked chart
	HeatmapWidth  float64 `yaml:"heatmap_width_in"`
	HeatmapHeight float64 `yaml:"heatmap_height_in"`
	BarsWidth     float64 `yaml:"bars_width_in"`
	BarsHeight    float64 `yaml:"bars_height_in"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extension:    ".gbk",
			RecordMarker: "CDS",
		},
		Charts: ChartConfig{
			TopN:          50,
			HeatmapWidth:  10,
			HeatmapHeight: 8,
			BarsWidth:     12,
			BarsHeight:    6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Scan.Extension == "" {
		return fmt.Errorf("scan.extension must not be empty")
	}
	if c.Scan.RecordMarker == "" {
		return fmt.Errorf("scan.record_marker must not be empty")
	}
	if c.Charts.TopN <= 0 {
		return fmt.Errorf("charts.top_n must be positive, got %d", c.Charts.TopN)
	}
	if c.Charts.HeatmapWidth <= 0 || c.Charts.HeatmapHeight <= 0 {
		return fmt.Errorf("heatmap dimensions must be positive")
	}
	if c.Charts.BarsWidth <= 0 || c.Charts.BarsHeight <= 0 {
		return fmt.Errorf("bar chart dimensions must be positive")
	}
	return nil
}
