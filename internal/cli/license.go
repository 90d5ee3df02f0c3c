package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/minutes/internal/adapters/license"
	"github.com/example/minutes/internal/wire"
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage the extraction service license",
}

var licenseActivateCmd = &cobra.Command{
	Use:   "activate [license-key]",
	Short: "Store a license key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		expiry, _ := cmd.Flags().GetString("expiry")

		if expiry == "" {
			expiry = time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)
		} else if _, err := time.Parse(time.RFC3339, expiry); err != nil {
			return fmt.Errorf("invalid --expiry %q (want RFC 3339)", expiry)
		}

		if err := wire.LicenseGate().SaveLicense(&license.License{
			Email:      email,
			LicenseKey: args[0],
			Expiry:     expiry,
		}); err != nil {
			return fmt.Errorf("failed to store license: %w", err)
		}

		fmt.Println("✓ License activated")
		return nil
	},
}

var licenseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether extraction is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		decision, err := wire.LicenseGate().Check(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to check license: %w", err)
		}
		if decision.HasAccess {
			fmt.Printf("✓ Extraction available (%s)\n", decision.Reason)
		} else {
			fmt.Println("✗ No license and the free trial has ended")
			fmt.Println("  Run 'minutes license activate <key>' to continue extracting")
		}
		return nil
	},
}

func init() {
	licenseActivateCmd.Flags().String("email", "", "Email the license was issued to")
	licenseActivateCmd.Flags().String("expiry", "", "License expiry (RFC 3339, defaults to one year out)")

	licenseCmd.AddCommand(licenseActivateCmd)
	licenseCmd.AddCommand(licenseStatusCmd)
}

// LicenseCmd returns the license command
func LicenseCmd() *cobra.Command {
	return licenseCmd
}
