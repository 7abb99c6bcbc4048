package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyshare/storyshare/internal/client"
	"github.com/storyshare/storyshare/models"
)

func newRegisterCommand(flags *rootFlags) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				err := app.Services.AuthService.Register(ctx, models.RegisterRequest{
					Name:     name,
					Email:    email,
					Password: password,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Account created for %s. You can now log in.\n", email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCommand(flags *rootFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				session, err := app.Services.AuthService.Login(ctx, models.LoginRequest{
					Email:    email,
					Password: password,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Logged in as %s.\n", session.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *client.App) error {
				if err := app.Services.AuthService.Logout(ctx); err != nil {
					return err
				}
				fmt.Println("Logged out.")
				return nil
			})
		},
	}
}
