package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/client"
	"github.com/storyshare/storyshare/models"
)

func newNotificationsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage push notification subscriptions",
		Long:  "Registers or removes a web-push subscription with the StoryShare service. The endpoint and keys come from the push provider handling delivery.",
	}

	cmd.AddCommand(
		newNotificationsSubscribeCommand(flags),
		newNotificationsUnsubscribeCommand(flags),
	)

	return cmd
}

func newNotificationsSubscribeCommand(flags *rootFlags) *cobra.Command {
	var endpoint, p256dh, auth string

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Register a push subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				err := app.Adapter.SubscribeNotifications(ctx, models.PushSubscription{
					Endpoint: endpoint,
					Keys: models.SubscriptionKeys{
						P256DH: p256dh,
						Auth:   auth,
					},
				})
				if err != nil {
					return err
				}
				fmt.Println("Subscribed to story notifications.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "push service endpoint URL")
	cmd.Flags().StringVar(&p256dh, "p256dh", "", "subscription public key")
	cmd.Flags().StringVar(&auth, "auth", "", "subscription auth secret")
	cmd.MarkFlagRequired("endpoint")
	cmd.MarkFlagRequired("p256dh")
	cmd.MarkFlagRequired("auth")

	return cmd
}

func newNotificationsUnsubscribeCommand(flags *rootFlags) *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "unsubscribe",
		Short: "Remove a push subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				if err := app.Adapter.UnsubscribeNotifications(ctx, endpoint); err != nil {
					return err
				}
				fmt.Println("Unsubscribed from story notifications.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "push service endpoint URL")
	cmd.MarkFlagRequired("endpoint")

	return cmd
}
