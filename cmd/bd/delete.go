package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(id, currentActor(), deleteForce); err != nil {
			return err
		}
		fmt.Println("deleted", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "delete even if other issues depend on it")
}
