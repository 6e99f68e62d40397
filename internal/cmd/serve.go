package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the capture control web service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, errApp := NewCapwatch()
			if errApp != nil {
				return errApp
			}

			defer app.Close()

			if errSetup := app.Init(ctx); errSetup != nil {
				return errSetup
			}

			router, errRouter := app.Router(true)
			if errRouter != nil {
				return errRouter
			}

			app.Start(ctx)

			return app.Serve(ctx, router)
		},
	}
}
