package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitialize(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if v == nil {
		t.Fatal("viper instance is nil after Initialize()")
	}
}

func TestDefaults(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetString("prefix"); got != "bd" {
		t.Errorf("GetString(prefix) = %q, want \"bd\"", got)
	}
	if got := GetFloat64("max-collision-prob"); got != 0.25 {
		t.Errorf("GetFloat64(max-collision-prob) = %v, want 0.25", got)
	}
	if got := GetInt("min-hash-length"); got != 3 {
		t.Errorf("GetInt(min-hash-length) = %v, want 3", got)
	}
	if got := GetInt("max-hash-length"); got != 8 {
		t.Errorf("GetInt(max-hash-length) = %v, want 8", got)
	}
}

func TestEnvironmentBinding(t *testing.T) {
	oldValue := os.Getenv("BD_PREFIX")
	_ = os.Setenv("BD_PREFIX", "proj")
	defer os.Setenv("BD_PREFIX", oldValue)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetString("prefix"); got != "proj" {
		t.Errorf("GetString(prefix) with BD_PREFIX=proj = %q, want \"proj\"", got)
	}
}

func TestConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	beadsDir := filepath.Join(tmpDir, ".beads")
	if err := os.MkdirAll(beadsDir, 0750); err != nil {
		t.Fatalf("failed to create .beads directory: %v", err)
	}

	configContent := "prefix: proj\nactor: configuser\nmax-collision-prob: 0.1\n"
	configPath := filepath.Join(beadsDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetString("prefix"); got != "proj" {
		t.Errorf("GetString(prefix) = %q, want \"proj\"", got)
	}
	if got := GetString("actor"); got != "configuser" {
		t.Errorf("GetString(actor) = %q, want \"configuser\"", got)
	}
	if got := GetFloat64("max-collision-prob"); got != 0.1 {
		t.Errorf("GetFloat64(max-collision-prob) = %v, want 0.1", got)
	}
}

func TestConfigPrecedenceEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	beadsDir := filepath.Join(tmpDir, ".beads")
	if err := os.MkdirAll(beadsDir, 0750); err != nil {
		t.Fatalf("failed to create .beads directory: %v", err)
	}
	configPath := filepath.Join(beadsDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("prefix: fromfile\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	_ = os.Setenv("BD_PREFIX", "fromenv")
	defer os.Unsetenv("BD_PREFIX")

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetString("prefix"); got != "fromenv" {
		t.Errorf("GetString(prefix) = %q, want \"fromenv\" (env should override config)", got)
	}
}

func TestSetAndGet(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	Set("test-key", "test-value")
	if got := GetString("test-key"); got != "test-value" {
		t.Errorf("GetString(test-key) = %q, want \"test-value\"", got)
	}
	Set("test-int", 42)
	if got := GetInt("test-int"); got != 42 {
		t.Errorf("GetInt(test-int) = %d, want 42", got)
	}
}
