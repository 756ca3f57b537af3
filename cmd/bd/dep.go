package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage dependency edges between issues",
}

var depType string
var depThreadID string

var depAddCmd = &cobra.Command{
	Use:   "add [issue-id] [depends-on-id]",
	Short: "Add a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		dependsOnID, err := store.Resolve(args[1])
		if err != nil {
			return err
		}

		thread := depThreadID
		if thread == "" {
			thread = uuid.NewString()
		}

		dep := &core.Dependency{
			IssueID:     issueID,
			DependsOnID: dependsOnID,
			Type:        core.ParseDependencyType(depType),
			ThreadID:    &thread,
		}
		if err := store.AddDependency(dep, currentActor()); err != nil {
			return err
		}
		fmt.Printf("added %s %s -> %s\n", dep.Type, issueID, dependsOnID)
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove [issue-id] [depends-on-id]",
	Short: "Remove a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		dependsOnID, err := store.Resolve(args[1])
		if err != nil {
			return err
		}
		if err := store.RemoveDependency(issueID, dependsOnID, currentActor()); err != nil {
			return err
		}
		fmt.Printf("removed %s -> %s\n", issueID, dependsOnID)
		return nil
	},
}

var depListCmd = &cobra.Command{
	Use:   "list [issue-id]",
	Short: "List an issue's dependencies and dependents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}
		deps := store.GetDependencies(id)
		dependents := store.GetDependents(id)

		fmt.Println("depends on:")
		for _, d := range deps {
			fmt.Printf("  %s %s\n", d.ID, d.Title)
		}
		fmt.Println("depended on by:")
		for _, d := range dependents {
			fmt.Printf("  %s %s\n", d.ID, d.Title)
		}
		return nil
	},
}

func init() {
	depAddCmd.Flags().StringVar(&depType, "type", string(core.DepBlocks), "dependency type")
	depAddCmd.Flags().StringVar(&depThreadID, "thread", "", "correlation id for the edge (default: generated uuid)")
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depListCmd)
}
