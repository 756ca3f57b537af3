package main

import (
	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
)

var (
	readyAssignee   string
	readyUnassigned bool
	readyLabelsAnd  []string
	readyLabelsOr   []string
	readyTypes      []string
	readyDeferred   bool
	readyLimit      int
	readyParent     string
	readyRecursive  bool
	readySortPolicy string
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List unblocked issues ready to work on",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := core.ReadyFilters{
			Assignee:        nilIfEmpty(readyAssignee),
			Unassigned:      readyUnassigned,
			LabelsAnd:       readyLabelsAnd,
			LabelsOr:        readyLabelsOr,
			IncludeDeferred: readyDeferred,
			Limit:           readyLimit,
			Parent:          readyParent,
			Recursive:       readyRecursive,
		}
		for _, t := range readyTypes {
			filters.Types = append(filters.Types, core.ParseType(t))
		}

		policy := core.SortPolicy(readySortPolicy)
		issues := store.Ready(filters, policy)
		return printIssues(cmd, issues)
	},
}

func init() {
	readyCmd.Flags().StringVar(&readyAssignee, "assignee", "", "filter by assignee")
	readyCmd.Flags().BoolVar(&readyUnassigned, "unassigned", false, "only unassigned issues")
	readyCmd.Flags().StringSliceVar(&readyLabelsAnd, "label", nil, "require label (AND, repeatable)")
	readyCmd.Flags().StringSliceVar(&readyLabelsOr, "label-any", nil, "require any of these labels (OR, repeatable)")
	readyCmd.Flags().StringSliceVar(&readyTypes, "type", nil, "filter by issue type (repeatable)")
	readyCmd.Flags().BoolVar(&readyDeferred, "include-deferred", false, "include deferred issues (their defer date is not checked)")
	readyCmd.Flags().IntVar(&readyLimit, "limit", 0, "limit results (0 = unlimited)")
	readyCmd.Flags().StringVar(&readyParent, "parent", "", "restrict to descendants of this issue id")
	readyCmd.Flags().BoolVar(&readyRecursive, "recursive", false, "include descendants at any depth, not just direct children")
	readyCmd.Flags().StringVar(&readySortPolicy, "sort", string(core.SortHybrid), "sort policy: hybrid | priority | oldest")
}
