package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/primary"
	"github.com/example/minutes/internal/wire"
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manage action items",
	Long:  "List, add, and complete action items extracted from notes or entered by hand",
}

var actionAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add an action item by hand",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meetingID, _ := cmd.Flags().GetString("meeting")

		resp, err := wire.ActionService().CreateAction(cmd.Context(), primary.CreateActionRequest{
			MeetingID: meetingID,
			Text:      args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to add action item: %w", err)
		}
		if !resp.Inserted {
			fmt.Println("Action item already exists, skipped")
			return nil
		}
		fmt.Printf("✓ Created action item %s\n", resp.ActionID)
		return nil
	},
}

var actionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List action items",
	RunE: func(cmd *cobra.Command, args []string) error {
		meetingID, _ := cmd.Flags().GetString("meeting")
		statusFlag, _ := cmd.Flags().GetString("status")

		filter := models.ActionStatus(statusFlag)
		switch filter {
		case "", models.ActionOpen, models.ActionClosed:
		default:
			return fmt.Errorf("invalid status filter %q (want open or closed)", statusFlag)
		}

		var items []*models.ActionItem
		var err error
		if meetingID != "" {
			items, err = wire.ActionService().ListActions(cmd.Context(), meetingID, filter)
		} else {
			items, err = wire.ActionService().ListAllActions(cmd.Context(), filter)
		}
		if err != nil {
			return fmt.Errorf("failed to list action items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No action items found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tMEETING\tTEXT")
		fmt.Fprintln(w, "--\t------\t-------\t----")
		for _, item := range items {
			meeting := item.MeetingID
			if meeting == "" {
				meeting = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Status, meeting, item.Text)
		}
		w.Flush()
		return nil
	},
}

var actionToggleCmd = &cobra.Command{
	Use:   "toggle [action-id]",
	Short: "Flip an action item between open and closed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := wire.ActionService().ToggleAction(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to toggle action item: %w", err)
		}
		fmt.Printf("✓ Action item %s is now %s\n", item.ID, item.Status)
		return nil
	},
}

func init() {
	actionAddCmd.Flags().StringP("meeting", "m", "", "Meeting to attach the item to")
	actionListCmd.Flags().StringP("meeting", "m", "", "Filter by meeting")
	actionListCmd.Flags().StringP("status", "s", "", "Filter by status (open, closed)")

	actionCmd.AddCommand(actionAddCmd)
	actionCmd.AddCommand(actionListCmd)
	actionCmd.AddCommand(actionToggleCmd)
}

// ActionCmd returns the action command
func ActionCmd() *cobra.Command {
	return actionCmd
}
