package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/client"
	"github.com/storyshare/storyshare/models"
)

func newFavoriteCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Manage the local favorites collection",
		Long:  "Favorites are stored locally with a full snapshot of the story, so they stay readable without connectivity.",
	}

	cmd.AddCommand(
		newFavoriteAddCommand(flags),
		newFavoriteRemoveCommand(flags),
		newFavoriteListCommand(flags),
	)

	return cmd
}

func newFavoriteAddCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <story-id>",
		Short: "Bookmark a story from the feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyID := args[0]
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				stories, err := app.Services.StoryService.ListStories(ctx)
				if err != nil {
					return fmt.Errorf("fetch feed: %w", err)
				}

				for _, story := range stories {
					if story.ID == storyID {
						if err := app.Services.FavoritesService.Add(ctx, story); err != nil {
							return err
						}
						fmt.Printf("Added %s to favorites.\n", storyID)
						return nil
					}
				}
				return fmt.Errorf("story %s not found in the feed", storyID)
			})
		},
	}
}

func newFavoriteRemoveCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <story-id>",
		Short: "Remove a story from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				if err := app.Services.FavoritesService.Remove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed %s from favorites.\n", args[0])
				return nil
			})
		},
	}
}

func newFavoriteListCommand(flags *rootFlags) *cobra.Command {
	var search, sortBy, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				favorites, err := app.Services.FavoritesService.List(ctx, models.FavoriteListOptions{
					Search:    search,
					SortBy:    models.FavoriteSortBy(sortBy),
					SortOrder: models.FavoriteSortOrder(order),
				})
				if err != nil {
					return err
				}

				for _, fav := range favorites {
					fmt.Printf("%-12s %-16s %s (favorited %s)\n",
						fav.ID, fav.Name, fav.Description, fav.FavoritedAt.Format("2006-01-02"))
				}
				fmt.Printf("\n%d favorites.\n", len(favorites))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or description")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by \"name\" or \"date\"")
	cmd.Flags().StringVar(&order, "order", "", "\"asc\" or \"desc\"")

	return cmd
}
