package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/cli"
	"github.com/example/minutes/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "minutes",
		Short:   "minutes - meeting notes with automatic action item extraction",
		Version: version.String(),
		Long: `minutes is a CLI tool for keeping meeting notes and tracking the action
items extracted from them by a remote extraction service.`,
	}

	rootCmd.AddCommand(cli.MeetingCmd())
	rootCmd.AddCommand(cli.NoteCmd())
	rootCmd.AddCommand(cli.ActionCmd())
	rootCmd.AddCommand(cli.AgendaCmd())
	rootCmd.AddCommand(cli.ExtractCmd())
	rootCmd.AddCommand(cli.LicenseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
