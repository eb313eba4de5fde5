// Package config loads the optional thistle.yaml run-configuration file.
// Of its fields only traceJSON has a CLI counterpart (run --trace-json),
// and that flag, when passed, wins over the file; maxCallDepth and
// allowInput are set from the file alone.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config mirrors the run-time knobs spec.md leaves up to the host: how
// deep recursion may go before the interpreter gives up, whether the
// input() native is allowed to read from stdin at all, and whether a
// trace should be written by default.
type Config struct {
	MaxCallDepth int    `yaml:"maxCallDepth"`
	AllowInput   *bool  `yaml:"allowInput"`
	TraceJSON    string `yaml:"traceJSON"`
}

// Default returns the configuration a run has when no thistle.yaml is
// present and no flags override it.
func Default() *Config {
	allow := true
	return &Config{
		MaxCallDepth: 1024,
		AllowInput:   &allow,
	}
}

// Load reads and parses the config file at path. An empty path or a
// missing file is not an error: Load then returns Default(). No
// default-named thistle.yaml is searched for; callers pass the --config
// value as given.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// InputAllowed reports whether the input() native may read from stdin,
// defaulting to true when the file never mentioned the key.
func (c *Config) InputAllowed() bool {
	if c == nil || c.AllowInput == nil {
		return true
	}
	return *c.AllowInput
}
