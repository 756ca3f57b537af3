// Package config discovers bd's configuration: the .beads directory, the
// issue id prefix, and the adaptive id generator's tuning knobs. It layers
// viper over a config file and environment variables the same way the
// teacher's daemon/CLI configuration did, generalized to the core's needs
// instead of the daemon's.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton. Should be called
// once at application startup, before any command reads configuration.
func Initialize() error {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	cwd, err := os.Getwd()
	if err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			beadsDir := filepath.Join(dir, ".beads")
			if info, statErr := os.Stat(beadsDir); statErr == nil && info.IsDir() {
				v.AddConfigPath(beadsDir)
				break
			}
		}
		v.AddConfigPath(filepath.Join(cwd, ".beads"))
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "bd"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".beads"))
	}

	v.SetEnvPrefix("BD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("json", false)
	v.SetDefault("actor", "")
	v.SetDefault("prefix", "bd")
	v.SetDefault("jsonl-path", "")
	v.SetDefault("max-collision-prob", 0.25)
	v.SetDefault("min-hash-length", 3)
	v.SetDefault("max-hash-length", 8)
	v.SetDefault("log-file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// GetString retrieves a string configuration value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetFloat64 retrieves a float configuration value.
func GetFloat64(key string) float64 {
	if v == nil {
		return 0
	}
	return v.GetFloat64(key)
}

// Set sets a configuration value, overriding file/env for the process
// lifetime (used for CLI flag overrides).
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns all configuration settings as a map.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// NewLogger builds a rotating file logger per the log-file setting,
// defaulting to $TMPDIR/bd.log when log-file is empty.
func NewLogger() *lumberjack.Logger {
	path := GetString("log-file")
	if path == "" {
		path = filepath.Join(os.TempDir(), "bd.log")
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
}
