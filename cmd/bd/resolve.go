package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [partial-id]",
	Short: "Resolve a partial id to its full issue id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}
