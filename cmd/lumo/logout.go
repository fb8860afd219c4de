package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pcsoft.com/lumo/internal/config"
)

func NewLogoutCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored session and chat history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.chat.CancelStreams()
			a.auth.Logout()
			a.chat.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
