package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/mirror"
)

var mirrorPath string

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Manage the optional read-only SQLite mirror",
}

var mirrorRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the SQLite mirror from the current store",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := mirrorPath
		if path == "" {
			path = filepath.Join(resolveBeadsDir(), "mirror.db")
		}
		m, err := mirror.Open(path)
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Refresh(store); err != nil {
			return err
		}
		fmt.Println("mirror refreshed at", path)
		return nil
	},
}

var mirrorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print issue counts by status from the mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := mirrorPath
		if path == "" {
			path = filepath.Join(resolveBeadsDir(), "mirror.db")
		}
		m, err := mirror.Open(path)
		if err != nil {
			return err
		}
		defer m.Close()

		counts, err := m.CountByStatus()
		if err != nil {
			return err
		}
		for status, count := range counts {
			fmt.Printf("%-12s %d\n", status, count)
		}
		return nil
	},
}

func init() {
	mirrorCmd.PersistentFlags().StringVar(&mirrorPath, "db", "", "path to the mirror database (default: .beads/mirror.db)")
	mirrorCmd.AddCommand(mirrorRefreshCmd, mirrorStatusCmd)
}
