package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ttrei/bd/internal/core"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updatePriority    int
	updateAssignee    string
	updatePrioritySet bool
	updateStatusSet   bool
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.Resolve(args[0])
		if err != nil {
			return err
		}

		patch := &core.IssueUpdate{}
		if cmd.Flags().Changed("title") {
			patch.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			patch.Description = core.SetTo(updateDescription)
		}
		if updateStatusSet {
			status, err := core.ParseStatus(updateStatus)
			if err != nil {
				return err
			}
			patch.Status = &status
		}
		if updatePrioritySet {
			p := core.Priority(updatePriority)
			patch.Priority = &p
		}
		if cmd.Flags().Changed("assignee") {
			patch.Assignee = core.SetTo(updateAssignee)
		}

		updated, err := store.Update(id, patch, currentActor())
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cmd.Println(green("updated"), updated.ID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status")
	updateCmd.Flags().IntVar(&updatePriority, "priority", 0, "new priority")
	updateCmd.Flags().StringVar(&updateAssignee, "assignee", "", "new assignee")

	updateCmd.PreRun = func(cmd *cobra.Command, args []string) {
		updateStatusSet = cmd.Flags().Changed("status")
		updatePrioritySet = cmd.Flags().Changed("priority")
	}
}
