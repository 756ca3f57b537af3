package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
	"github.com/ttrei/bd/internal/importer"
)

var (
	importDryRun     bool
	importSkipUpdate bool
	importStrict     bool
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Merge issues from a foreign JSONL export into this project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := core.Load(args[0])
		if err != nil {
			return err
		}

		issues := make([]*core.Issue, len(data.Issues))
		for i, issue := range data.Issues {
			cp := *issue
			cp.Labels = data.Labels[issue.ID]
			cp.Comments = data.Comments[issue.ID]
			issues[i] = &cp
		}
		for _, d := range data.Dependencies {
			for _, issue := range issues {
				if issue.ID == d.IssueID {
					issue.Dependencies = append(issue.Dependencies, d)
				}
			}
		}

		result, err := importer.Import(store, issues, currentActor(), importer.Options{
			DryRun:     importDryRun,
			SkipUpdate: importSkipUpdate,
			Strict:     importStrict,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(result)
		}
		fmt.Printf("created=%d updated=%d unchanged=%d skipped=%d\n",
			result.Created, result.Updated, result.Unchanged, result.Skipped)
		if result.PrefixMismatch {
			fmt.Printf("warning: import contains ids outside prefix %q: %v\n", result.ExpectedPrefix, result.MismatchCounts)
		}
		for _, w := range result.Warnings {
			fmt.Println("warning:", w)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write every issue to a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Save(args[0]); err != nil {
			return err
		}
		fmt.Println("exported to", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "preview changes without applying them")
	importCmd.Flags().BoolVar(&importSkipUpdate, "skip-update", false, "create-only: never update existing issues")
	importCmd.Flags().BoolVar(&importStrict, "strict", false, "fail on the first per-item error instead of skipping it")
}
