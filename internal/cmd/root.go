// Package cmd holds the portal-gateway command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portal-gateway",
	Short: "Session-aware gateway for the recruitment portal",
	Long: `portal-gateway sits between the portal front end and the recruitment backend.
It keeps each browser's session, gates the role-specific sections, relays
API calls and pushes real-time notifications.

All settings come from environment variables; run "portal-gateway config"
to see the effective values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
