// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/client"
	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/service"
)

type rootFlags struct {
	serverURL    string
	dbPath       string
	cachePath    string
	configPath   string
	syncInterval time.Duration
}

func (f *rootFlags) overrides() config.Overrides {
	return config.Overrides{
		BaseURL:      f.serverURL,
		DBPath:       f.dbPath,
		CachePath:    f.cachePath,
		SyncInterval: f.syncInterval,
		JSONFilePath: f.configPath,
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "storyshare",
		Short:         "Share stories, even while offline",
		Long:          "storyshare is an offline-first client for the StoryShare service.\nStories submitted without connectivity are queued locally and delivered\nautomatically once the network returns.",
		Version:       buildInfo(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.serverURL, "server", "", "base URL of the story service")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "path to the local database file")
	root.PersistentFlags().StringVar(&flags.cachePath, "cache", "", "path to the response cache file")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a JSON config file")
	root.PersistentFlags().DurationVar(&flags.syncInterval, "sync-interval", 0, "background drain interval")

	root.AddCommand(
		newRegisterCommand(flags),
		newLoginCommand(flags),
		newLogoutCommand(flags),
		newStoriesCommand(flags),
		newSubmitCommand(flags),
		newFavoriteCommand(flags),
		newNotificationsCommand(flags),
		newSyncCommand(flags),
		newRunCommand(flags),
	)

	return root
}

// withApp assembles the application, restores the session, runs fn, and
// releases resources. Every subcommand funnels through here.
func withApp(flags *rootFlags, fn func(ctx context.Context, app *client.App) error) error {
	app, err := client.NewApp(flags.overrides())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	if err := app.Bootstrap(ctx); err != nil {
		return err
	}

	err = fn(ctx, app)
	if errors.Is(err, adapter.ErrUnauthorized) {
		// The stored token was rejected by the server, so keeping the
		// session around would only repeat the failure.
		if logoutErr := app.Services.AuthService.Logout(ctx); logoutErr != nil {
			app.Logger.Err(logoutErr).Msg("failed to clear rejected session")
		}
		return fmt.Errorf("%s: %w", service.MsgReloginRequired, err)
	}
	return err
}
