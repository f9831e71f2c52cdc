package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPremiumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "Manage the premium plan",
	}

	cmd.AddCommand(newPremiumStatusCmd())
	cmd.AddCommand(newPremiumSubscribeCmd())
	cmd.AddCommand(newPremiumCancelCmd())

	return cmd
}

func newPremiumStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the premium state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := apiClient.Premium().Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get premium status: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), st)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "State:    %s\n", formatState(st.State))
			if st.ExpiresAt != nil {
				fmt.Fprintf(out, "Expires:  %s\n", st.ExpiresAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newPremiumSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "subscribe <monthly|yearly>",
		Short:     "Activate a premium plan",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"monthly", "yearly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Premium().Subscribe(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to subscribe: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), a)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Premium %s active until %s\n", a.Plan, a.ExpiresAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newPremiumCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Return to the free plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Premium().Cancel(context.Background()); err != nil {
				return fmt.Errorf("failed to cancel premium: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Premium cancelled")
			return nil
		},
	}
}
