package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tasksched/logging"
)

// Config holds configuration for a scheduler process.
type Config struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Threshold int    `yaml:"threshold"`  // default threshold for scheduling passes
	Policy    string `yaml:"policy"`     // leastloaded, roundrobin
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Threshold: 1,
		Policy:    "leastloaded",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", c.Threshold)
	}
	switch c.Policy {
	case "leastloaded", "roundrobin":
	default:
		return fmt.Errorf("unknown policy %q", c.Policy)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
