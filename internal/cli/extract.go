package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/wire"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run and inspect action item extraction",
	Long:  "Trigger extraction cycles against the extraction service and inspect per-meeting results",
}

var extractRunCmd = &cobra.Command{
	Use:   "run [meeting-id]",
	Short: "Extract action items for one meeting now",
	Long:  "Run one extraction cycle immediately, bypassing the debounce window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ExtractionService().ExtractActions(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		return nil
	},
}

var extractSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Recover interrupted work and extract for all meetings with outstanding notes",
	Long: `Run the session-start recovery pass: demote notes interrupted mid-extraction
back into the retry pool, resume persisted debounce windows, then walk every
meeting with unprocessed or failed notes and extract for each in turn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ExtractionService().RunExtractionOnLoad(cmd.Context()); err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		return nil
	},
}

var extractStatusCmd = &cobra.Command{
	Use:   "status [meeting-id]",
	Short: "Show the last extraction result for a meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := wire.ExtractionService().Status(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read extraction status: %w", err)
		}
		if record == nil {
			fmt.Printf("No extraction has run for %s\n", args[0])
			return nil
		}

		fmt.Printf("Meeting: %s\n", record.MeetingID)
		fmt.Printf("Status: %s\n", record.Status)
		if record.LastExtractedAt != nil {
			fmt.Printf("Last extracted: %s\n", record.LastExtractedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("Processed notes: %d\n", len(record.ProcessedNoteIDs))
		if record.RetryCount > 0 {
			fmt.Printf("Retry count: %d\n", record.RetryCount)
		}
		if record.LastError != "" {
			fmt.Printf("Last error: %s\n", strings.TrimSpace(record.LastError))
		}
		return nil
	},
}

func init() {
	extractCmd.AddCommand(extractRunCmd)
	extractCmd.AddCommand(extractSweepCmd)
	extractCmd.AddCommand(extractStatusCmd)
}

// ExtractCmd returns the extract command
func ExtractCmd() *cobra.Command {
	return extractCmd
}
