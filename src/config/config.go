// Package config reads the optional esm.yaml viewer configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/dataset"
)

// DefaultFile is the config path probed when -config is not given.
const DefaultFile = "esm.yaml"

// Config carries process-level settings. UI state (selected countries,
// metric, active tab) is persisted separately through Fyne preferences.
type Config struct {
	DatasetPath   string `yaml:"dataset_path"`
	DefaultMetric string `yaml:"default_metric"`
	LogLevel      string `yaml:"log_level"`
	WindowWidth   int    `yaml:"window_width"`
	WindowHeight  int    `yaml:"window_height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DatasetPath:   dataset.DefaultPath,
		DefaultMetric: "Scaler",
		LogLevel:      "info",
		WindowWidth:   1100,
		WindowHeight:  800,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is fine
// and yields the defaults; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = dataset.DefaultPath
	}
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = Default().WindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = Default().WindowHeight
	}
	return cfg, nil
}
