package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage issue labels",
}

var labelAddCmd = &cobra.Command{
	Use:   "add [issue-id] [label]",
	Short: "Attach a label to an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := store.AddLabel(id, args[1], currentActor()); err != nil {
			return err
		}
		fmt.Println("labeled", id, args[1])
		return nil
	},
}

var labelRemoveCmd = &cobra.Command{
	Use:   "remove [issue-id] [label]",
	Short: "Remove a label from an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := store.RemoveLabel(id, args[1], currentActor()); err != nil {
			return err
		}
		fmt.Println("unlabeled", id, args[1])
		return nil
	},
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List label usage counts across all issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, lc := range store.LabelCounts() {
			fmt.Printf("%-20s %d\n", lc.Label, lc.Count)
		}
		return nil
	},
}

func init() {
	labelCmd.AddCommand(labelAddCmd, labelRemoveCmd, labelListCmd)
}
