// Command portal-gateway runs the recruitment portal's session gateway.
//
//go:generate swag init --dir ../../ --generalInfo cmd/portal-gateway/main.go --output ../../docs --outputTypes go --parseInternal
//
//	@title						Portal Gateway API
//	@version					1.0
//	@description				Backend-for-frontend of the recruitment portal: sessions, role-gated shells, notifications and backend proxy routes.
//	@BasePath					/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talentbridge/portal-gateway/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
