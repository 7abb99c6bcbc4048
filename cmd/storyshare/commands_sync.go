package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/client"
)

func newSyncCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Deliver queued stories now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				// Bootstrap already drained anything queued from earlier
				// runs; report what the queue looks like now.
				pending, err := app.Services.SyncService.Pending(ctx)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Println("Nothing left to sync.")
					return nil
				}

				report, err := app.Services.SyncService.Drain(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Synced %d, failed %d, abandoned %d.\n",
					report.Synced, report.Failed, report.Abandoned)
				return nil
			})
		},
	}
}

func newRunCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the background sync agent",
		Long:  "Keeps the process alive, draining queued stories on a schedule and the moment connectivity returns. Stop with Ctrl+C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.NewApp(flags.overrides())
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println("Sync agent running. Press Ctrl+C to stop.")
			return app.Run(ctx)
		},
	}
}
