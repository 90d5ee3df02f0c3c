package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/models"
	"github.com/example/minutes/internal/ports/primary"
	"github.com/example/minutes/internal/wire"
)

const dayFlagFormat = "2006-01-02"

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage meeting notes",
	Long:  "Add, edit, and list notes; every note change schedules action item extraction",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [meeting-id] [text]",
	Short: "Add a note to a meeting",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(cmd)
		if err != nil {
			return err
		}

		resp, err := wire.NoteService().AddNote(cmd.Context(), primary.AddNoteRequest{
			MeetingID: args[0],
			Text:      args[1],
			Day:       day,
		})
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		fmt.Printf("✓ Note added to %s (batch %s)\n", args[0], resp.BatchID)
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit [meeting-id] [index] [text]",
	Short: "Replace the text of a note",
	Long:  "Replace the text of the note at the given position. A material change re-queues the note for extraction.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(cmd)
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		if err := wire.NoteService().EditNote(cmd.Context(), primary.EditNoteRequest{
			MeetingID: args[0],
			Day:       day,
			Index:     index,
			Text:      args[2],
		}); err != nil {
			return fmt.Errorf("failed to edit note: %w", err)
		}

		fmt.Printf("✓ Note %d updated\n", index)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [meeting-id] [index]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(cmd)
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		if err := wire.NoteService().DeleteNote(cmd.Context(), primary.DeleteNoteRequest{
			MeetingID: args[0],
			Day:       day,
			Index:     index,
		}); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Printf("✓ Note %d deleted\n", index)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list [meeting-id]",
	Short: "List a meeting's notes by day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batches, err := wire.NoteService().ListNotes(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(batches) == 0 {
			fmt.Println("No notes found")
			return nil
		}

		for _, batch := range batches {
			fmt.Printf("%s (%d notes)\n", batch.Date.Format(dayFlagFormat), len(batch.Notes))
			for i, note := range batch.Notes {
				fmt.Printf("  %d. %s %s\n", i, statusMark(note.Status), note.Text)
			}
		}
		return nil
	},
}

// statusMark renders the extraction lifecycle state of a note.
func statusMark(status models.NoteStatus) string {
	switch status {
	case models.NoteCompleted:
		return color.New(color.FgGreen).Sprint("✓")
	case models.NoteInProgress:
		return color.New(color.FgCyan).Sprint("…")
	case models.NoteFailed:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgYellow).Sprint("◌")
	}
}

func dayFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("day")
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(dayFlagFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --day %q (want YYYY-MM-DD)", raw)
	}
	return day, nil
}

func parseIndex(raw string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(raw, "%d", &index); err != nil {
		return 0, fmt.Errorf("invalid note index %q", raw)
	}
	return index, nil
}

func init() {
	noteAddCmd.Flags().StringP("day", "d", "", "Day to file the note under (YYYY-MM-DD, defaults to today)")
	noteEditCmd.Flags().StringP("day", "d", "", "Day of the note's batch (YYYY-MM-DD, defaults to today)")
	noteDeleteCmd.Flags().StringP("day", "d", "", "Day of the note's batch (YYYY-MM-DD, defaults to today)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteListCmd)
}

// NoteCmd returns the note command
func NoteCmd() *cobra.Command {
	return noteCmd
}
