package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an issue's full detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		issue, err := store.Get(id)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(issue)
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold(issue.ID), issue.Title)
		fmt.Printf("status: %s  priority: %s  type: %s\n", issue.Status, issue.Priority, issue.IssueType)
		if issue.Assignee != "" {
			fmt.Printf("assignee: %s\n", issue.Assignee)
		}
		if len(issue.Labels) > 0 {
			fmt.Printf("labels: %v\n", issue.Labels)
		}
		if issue.Description != "" {
			fmt.Printf("\n%s\n", issue.Description)
		}
		if len(issue.Dependencies) > 0 {
			fmt.Println("\ndependencies:")
			for _, d := range issue.Dependencies {
				fmt.Printf("  %s %s -> %s\n", d.Type, d.IssueID, d.DependsOnID)
			}
		}
		if len(issue.Comments) > 0 {
			fmt.Println("\ncomments:")
			for _, c := range issue.Comments {
				fmt.Printf("  [%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Author, c.Text)
			}
		}
		return nil
	},
}
