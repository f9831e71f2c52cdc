package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the server and the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			health, err := apiClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}
			fmt.Fprintf(out, "Server:   %s (%s)\n", viper.GetString("server_url"), health.Status)

			token := viper.GetString("auth.token")
			if token == "" {
				fmt.Fprintln(out, "Session:  not logged in")
				return nil
			}

			apiClient.SetToken(token)
			user, err := apiClient.GetCurrentUser(ctx)
			if err != nil {
				fmt.Fprintf(out, "Session:  invalid (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Session:  %s\n", user.Email)
			return nil
		},
	}
}
