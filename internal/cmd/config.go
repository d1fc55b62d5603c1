package cmd

import (
	"encoding/json"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/talentbridge/portal-gateway/internal/pkg/config"
)

// lookuper is swapped in tests.
var lookuper envconfig.Lookuper = envconfig.OsLookuper()

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the gateway would start with, as JSON.

Secrets such as REDIS_PASSWORD are never printed.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(cmd.Context(), lookuper)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
