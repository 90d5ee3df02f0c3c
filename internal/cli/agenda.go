package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/wire"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Manage standing agenda items",
}

var agendaAddCmd = &cobra.Command{
	Use:   "add [meeting-id] [text]",
	Short: "Add an agenda item to a meeting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := wire.AgendaService().AddItem(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add agenda item: %w", err)
		}
		fmt.Printf("✓ Created agenda item %s\n", item.ID)
		return nil
	},
}

var agendaListCmd = &cobra.Command{
	Use:   "list [meeting-id]",
	Short: "List a meeting's agenda items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := wire.AgendaService().ListItems(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list agenda items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No agenda items found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTEXT")
		fmt.Fprintln(w, "--\t------\t----")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Status, item.Text)
		}
		w.Flush()
		return nil
	},
}

var agendaCloseCmd = &cobra.Command{
	Use:   "close [agenda-id]",
	Short: "Close an agenda item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.AgendaService().CloseItem(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to close agenda item: %w", err)
		}
		fmt.Printf("✓ Agenda item %s closed\n", args[0])
		return nil
	},
}

func init() {
	agendaCmd.AddCommand(agendaAddCmd)
	agendaCmd.AddCommand(agendaListCmd)
	agendaCmd.AddCommand(agendaCloseCmd)
}

// AgendaCmd returns the agenda command
func AgendaCmd() *cobra.Command {
	return agendaCmd
}
