package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
	"github.com/ttrei/bd/internal/triage"
)

var (
	createDescription string
	createType        string
	createPriority    int
	createAssignee    string
	createParent      string
	createLabels      []string
	createSuggest     bool
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issue := &core.Issue{
			Title:       args[0],
			Description: createDescription,
			Priority:    core.Priority(createPriority),
			IssueType:   core.ParseType(createType),
			Assignee:    createAssignee,
			Labels:      createLabels,
		}
		if createParent != "" {
			parentID, err := store.Resolve(createParent)
			if err != nil {
				return err
			}
			issue.ID = core.ChildID(parentID, nextChildIndex(parentID))
		}

		created, err := store.Create(issue, currentActor())
		if err != nil {
			return err
		}

		if createSuggest {
			if err := applySuggestion(cmd, created); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "bd: triage suggestion skipped: %v\n", err)
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(created)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintln(cmd.OutOrStdout(), green(created.ID), created.Title)
		return nil
	},
}

// nextChildIndex scans for parentID's direct children (ids of the form
// parentID+"."+n with no further dot-suffix) and returns one past the
// highest existing index, so siblings never collide. core.IDDepth reports
// nesting depth, not a sibling count, so it cannot be used here.
func nextChildIndex(parentID string) int {
	prefix := parentID + "."
	max := 0
	for _, issue := range store.List(core.ListFilters{IncludeClosed: true, IncludeDeferred: true, IncludeTemplates: true}) {
		if !strings.HasPrefix(issue.ID, prefix) {
			continue
		}
		rest := strings.TrimPrefix(issue.ID, prefix)
		if strings.Contains(rest, ".") {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "issue description")
	createCmd.Flags().StringVar(&createType, "type", string(core.TypeTask), "issue type")
	createCmd.Flags().IntVar(&createPriority, "priority", int(core.PriorityMedium), "priority 0 (critical) - 4 (backlog)")
	createCmd.Flags().StringVar(&createAssignee, "assignee", "", "assignee")
	createCmd.Flags().StringVar(&createParent, "parent", "", "parent issue id (creates a hierarchical child id)")
	createCmd.Flags().StringSliceVar(&createLabels, "label", nil, "label to attach (repeatable)")
	createCmd.Flags().BoolVar(&createSuggest, "suggest", false, "ask the configured model to draft a one-line triage note")
}

// applySuggestion asks triage for a one-line note on the freshly created
// issue and, on success, patches it onto Notes. Best-effort: a failure here
// (missing API key, network error) never fails the create itself.
func applySuggestion(cmd *cobra.Command, issue *core.Issue) error {
	client, err := triage.NewClient("")
	if err != nil {
		return err
	}
	note, err := client.SuggestForIssue(cmd.Context(), issue)
	if err != nil {
		return err
	}
	_, err = store.Update(issue.ID, &core.IssueUpdate{Notes: core.SetTo(note)}, currentActor())
	return err
}
