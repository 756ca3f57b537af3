// Command bd is a thin cobra CLI over internal/core. It owns argument
// parsing, output formatting, and the load/save lifecycle of the JSONL
// journal; every piece of tracking logic lives in internal/core.
package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/config"
	"github.com/ttrei/bd/internal/configfile"
	"github.com/ttrei/bd/internal/core"
)

var (
	jsonlPath  string
	actor      string
	jsonOutput bool
	beadsDir   string

	store *core.Store
)

var rootCmd = &cobra.Command{
	Use:   "bd",
	Short: "bd is a local-first, agent-friendly issue tracker",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}
		return loadStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil || cmd.Name() == "init" {
			return nil
		}
		return saveStore()
	},
}

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "bd: config error: %v\n", err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVar(&jsonlPath, "jsonl", "", "path to the JSONL journal (default: .beads/issues.jsonl)")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "", "actor name recorded on audit events")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mirrorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveBeadsDir walks up from cwd looking for a .beads directory the way
// internal/config does, falling back to ./.beads.
func resolveBeadsDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ".beads"
	}
	for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, ".beads")
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(cwd, ".beads")
}

func journalPath() string {
	if jsonlPath != "" {
		return jsonlPath
	}
	if p := config.GetString("jsonl-path"); p != "" {
		return p
	}
	dir := resolveBeadsDir()
	if cfg, err := configfile.Load(dir); err == nil && cfg != nil {
		return cfg.JSONLPath(dir)
	}
	return filepath.Join(dir, "issues.jsonl")
}

func prefix() string {
	dir := resolveBeadsDir()
	if cfg, err := configfile.Load(dir); err == nil && cfg != nil && cfg.Prefix != "" {
		return cfg.Prefix
	}
	if p := config.GetString("prefix"); p != "" {
		return p
	}
	return "bd"
}

func currentActor() string {
	if actor != "" {
		return actor
	}
	if a := config.GetString("actor"); a != "" {
		return a
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

func loadStore() error {
	store = core.NewStore(prefix())
	store.Path = journalPath()

	data, err := core.Load(store.Path)
	if err != nil {
		if cerr, ok := err.(*core.Error); ok && cerr.Kind == core.KindFileNotFound {
			return nil
		}
		return fmt.Errorf("loading journal: %w", err)
	}
	store.LoadFromJournal(data)
	store.ClearDirty()
	return nil
}

func saveStore() error {
	if len(store.Dirty()) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(store.Path), 0750); err != nil {
		return fmt.Errorf("creating .beads directory: %w", err)
	}
	if err := store.Save(store.Path); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	store.ClearDirty()
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "bd: "+format+"\n", args...)
	os.Exit(1)
}
