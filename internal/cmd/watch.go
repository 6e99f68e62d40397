package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leighmacdonald/capwatch/internal/watcher"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchCmd follows the game log. Capture control endpoints are disabled, captures only come from the log.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follows the game server log and serves the stats and capture pages",
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

			router, errRouter := app.Router(false)
			if errRouter != nil {
				return errRouter
			}

			app.Start(ctx)

			var (
				dispatcher = app.Dispatcher()
				logWatcher watcher.Watcher = watcher.New(app.config.Watch.Quiescence)
			)

			group, groupCtx := errgroup.WithContext(ctx)

			group.Go(func() error {
				return app.Serve(groupCtx, router)
			})

			group.Go(func() error {
				defer stop()

				return logWatcher.OnStabilizedChange(groupCtx, app.config.Watch.LogPath, dispatcher.HandleChange)
			})

			return group.Wait()
		},
	}
}
