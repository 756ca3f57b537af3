package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage issue comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add [issue-id] [text]",
	Short: "Add a comment to an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		c, err := store.AddComment(id, currentActor(), args[1], currentActor())
		if err != nil {
			return err
		}
		fmt.Printf("comment #%d added to %s\n", c.ID, id)
		return nil
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list [issue-id]",
	Short: "List an issue's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		for _, c := range store.GetComments(id) {
			fmt.Printf("[%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Author, c.Text)
		}
		return nil
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd, commentListCmd)
}
