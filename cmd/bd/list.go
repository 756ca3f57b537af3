package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
)

var (
	listStatus        string
	listAssignee      string
	listType          string
	listLimit         int
	listLabels        []string
	listLabelsAny     []string
	listTitleContains string
	listIncludeClosed bool
	listSort          string
	listReverse       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues matching filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := core.ListFilters{
			Assignee:        nilIfEmpty(listAssignee),
			TitleContains:   listTitleContains,
			Limit:           listLimit,
			Labels:          listLabels,
			LabelsOr:        listLabelsAny,
			IncludeClosed:   listIncludeClosed,
			IncludeDeferred: listIncludeClosed,
			Sort:            listSort,
			Reverse:         listReverse,
		}
		if listStatus != "" {
			status, err := core.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			filters.Statuses = []core.Status{status}
		}
		if listType != "" {
			filters.Types = []core.IssueType{core.ParseType(listType)}
		}

		issues := store.List(filters)
		return printIssues(cmd, issues)
	},
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printIssues(cmd *cobra.Command, issues []*core.Issue) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(issues)
	}
	for _, issue := range issues {
		fmt.Printf("%-14s %-4s %-6s %s\n", issue.ID, issue.Priority, issue.Status, issue.Title)
	}
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().StringVar(&listAssignee, "assignee", "", "filter by assignee")
	listCmd.Flags().StringVar(&listType, "type", "", "filter by issue type")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "limit results (0 = unlimited)")
	listCmd.Flags().StringSliceVar(&listLabels, "label", nil, "require label (AND, repeatable)")
	listCmd.Flags().StringSliceVar(&listLabelsAny, "label-any", nil, "require any of these labels (OR, repeatable)")
	listCmd.Flags().StringVar(&listTitleContains, "title", "", "title substring filter")
	listCmd.Flags().BoolVar(&listIncludeClosed, "all", false, "include closed and deferred issues")
	listCmd.Flags().StringVar(&listSort, "sort", "priority", "sort key: priority | created_at | updated_at | title")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "reverse sort order")
}
