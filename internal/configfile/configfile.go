// Package configfile persists the small per-project bd config: the
// configured id prefix and the path to the JSONL journal, recorded in a
// .beads/config.json file the way the teacher's configfile package records
// its database path.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the filename written inside a project's .beads directory.
const ConfigFileName = "config.json"

// Config is the on-disk shape of a project's bd configuration.
type Config struct {
	Prefix      string `json:"prefix"`
	Version     string `json:"version"`
	JSONLExport string `json:"jsonl_export,omitempty"`
}

// DefaultConfig returns the configuration a freshly initialized project gets.
func DefaultConfig(prefix, version string) *Config {
	return &Config{
		Prefix:      prefix,
		Version:     version,
		JSONLExport: "issues.jsonl",
	}
}

// ConfigPath returns the config file path for a given .beads directory.
func ConfigPath(beadsDir string) string {
	return filepath.Join(beadsDir, ConfigFileName)
}

// Load reads a project's config file. A missing file is not an error: it
// returns (nil, nil), signaling the caller to fall back to defaults.
func Load(beadsDir string) (*Config, error) {
	configPath := ConfigPath(beadsDir)

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes c to beadsDir's config file.
func (c *Config) Save(beadsDir string) error {
	configPath := ConfigPath(beadsDir)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// JSONLPath returns the journal path for beadsDir, defaulting to
// issues.jsonl when unset.
func (c *Config) JSONLPath(beadsDir string) string {
	if c.JSONLExport == "" {
		return filepath.Join(beadsDir, "issues.jsonl")
	}
	return filepath.Join(beadsDir, c.JSONLExport)
}
