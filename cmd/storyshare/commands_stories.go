package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/client"
	"github.com/storyshare/storyshare/models"
)

func newStoriesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "Browse the story feed",
		Long:  "Fetches the story feed. Recently seen feeds are served from the local cache when the service is unreachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				stories, err := app.Services.StoryService.ListStories(ctx)
				if err != nil {
					return err
				}

				for _, story := range stories {
					marker := " "
					if fav, _ := app.Services.FavoritesService.IsFavorite(ctx, story.ID); fav {
						marker = "*"
					}
					fmt.Printf("%s %-12s %-16s %s\n", marker, story.ID, story.Name, story.Description)
				}
				fmt.Printf("\n%d stories. * marks favorites.\n", len(stories))
				return nil
			})
		},
	}
}

func newSubmitCommand(flags *rootFlags) *cobra.Command {
	var (
		description string
		photoPath   string
		lat, lon    float64
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Share a new story",
		Long:  "Shares a new story with a photo. When the service is unreachable the story is queued locally and delivered automatically once connectivity returns.",
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := os.ReadFile(photoPath)
			if err != nil {
				return fmt.Errorf("read photo: %w", err)
			}

			sub := models.StorySubmission{
				Description: description,
				Photo:       photo,
				PhotoName:   filepath.Base(photoPath),
				PhotoType:   http.DetectContentType(photo),
			}
			if cmd.Flags().Changed("lat") {
				sub.Lat = &lat
			}
			if cmd.Flags().Changed("lon") {
				sub.Lon = &lon
			}

			return withApp(flags, func(ctx context.Context, app *client.App) error {
				outcome, err := app.Services.StoryService.SubmitStory(ctx, sub)
				if err != nil {
					return err
				}
				fmt.Println(outcome.Message)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "story text")
	cmd.Flags().StringVar(&photoPath, "photo", "", "path to the photo file")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the story location")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the story location")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("photo")

	return cmd
}
