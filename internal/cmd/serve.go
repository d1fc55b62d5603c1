package cmd

import (
	"github.com/spf13/cobra"

	"github.com/talentbridge/portal-gateway/internal/app"
	"github.com/talentbridge/portal-gateway/internal/pkg/config"
	"github.com/talentbridge/portal-gateway/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the gateway and serve until interrupted.

On SIGINT or SIGTERM the HTTP server drains first, then upstream sockets
are closed and the notification queue is stopped.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(cmd.Context(), lookuper)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portal-gateway",
	})

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	return a.Run(cmd.Context())
}
