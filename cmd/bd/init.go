package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/configfile"
)

var initCmd = &cobra.Command{
	Use:   "init [prefix]",
	Short: "Initialize a .beads directory in the current project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := "bd"
		if len(args) == 1 {
			prefix = args[0]
		}

		dir := filepath.Join(".", ".beads")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}

		cfg := configfile.DefaultConfig(prefix, "0.1.0")
		if err := cfg.Save(dir); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cmd.Println(green("initialized"), "bd project in", dir, "with prefix", prefix+"-")
		return nil
	},
}
