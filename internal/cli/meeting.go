package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/ports/primary"
	"github.com/example/minutes/internal/wire"
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meeting series",
	Long:  "Create, list, and delete the recurring meetings notes are filed under",
}

var meetingCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new meeting series",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		meetingType, _ := cmd.Flags().GetString("type")

		meeting, err := wire.MeetingService().CreateMeeting(cmd.Context(), primary.CreateMeetingRequest{
			Name: name,
			Type: meetingType,
		})
		if err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}

		fmt.Printf("✓ Created meeting %s: %s\n", meeting.ID, meeting.Name)
		fmt.Printf("  Type: %s\n", meeting.Type)
		return nil
	},
}

var meetingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meeting series",
	RunE: func(cmd *cobra.Command, args []string) error {
		meetings, err := wire.MeetingService().ListMeetings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list meetings: %w", err)
		}

		if len(meetings) == 0 {
			fmt.Println("No meetings found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tCREATED")
		fmt.Fprintln(w, "--\t----\t----\t-------")
		for _, m := range meetings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Type, m.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()
		return nil
	},
}

var meetingShowCmd = &cobra.Command{
	Use:   "show [meeting-id]",
	Short: "Show meeting details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meeting, err := wire.MeetingService().GetMeeting(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("meeting not found: %w", err)
		}

		fmt.Printf("Meeting: %s\n", meeting.ID)
		fmt.Printf("Name: %s\n", meeting.Name)
		fmt.Printf("Type: %s\n", meeting.Type)
		fmt.Printf("Created: %s\n", meeting.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var meetingDeleteCmd = &cobra.Command{
	Use:   "delete [meeting-id]",
	Short: "Delete a meeting and all its notes, agenda and action items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.MeetingService().DeleteMeeting(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete meeting: %w", err)
		}
		fmt.Printf("✓ Meeting %s deleted\n", args[0])
		return nil
	},
}

func init() {
	meetingCreateCmd.Flags().StringP("type", "t", "", "Meeting type (1:1, recurring, adhoc)")

	meetingCmd.AddCommand(meetingCreateCmd)
	meetingCmd.AddCommand(meetingListCmd)
	meetingCmd.AddCommand(meetingShowCmd)
	meetingCmd.AddCommand(meetingDeleteCmd)
}

// MeetingCmd returns the meeting command
func MeetingCmd() *cobra.Command {
	return meetingCmd
}
