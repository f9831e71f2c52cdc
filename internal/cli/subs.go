package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/paycal/backend/pkg/client"
)

func newSubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subs",
		Aliases: []string{"subscriptions"},
		Short:   "Manage subscriptions",
	}

	cmd.AddCommand(newSubsListCmd())
	cmd.AddCommand(newSubsAddCmd())
	cmd.AddCommand(newSubsRemoveCmd())
	cmd.AddCommand(newSubsUseCmd())

	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid subscription id %q", arg)
	}
	return id, nil
}

func newSubsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := apiClient.Subscriptions().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), subs)
			}

			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions yet. Add one with 'paycal subs add'.")
				return nil
			}

			now := time.Now()
			table := NewTable("ID", "NAME", "PRICE", "CYCLE", "CATEGORY", "NEXT BILLING", "LAST USED")
			for _, s := range subs {
				next := "-"
				if s.NextBillingDate != nil {
					next = *s.NextBillingDate
				}
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					truncate(s.Name, 30),
					formatMoney(s.Price, s.Currency),
					s.BillingCycle,
					s.Category,
					next,
					formatLastUsed(s.LastUsed, now),
				)
			}
			table.Render(cmd.OutOrStdout())
			return nil
		},
	}
}

func newSubsAddCmd() *cobra.Command {
	var req client.CreateSubscriptionRequest
	var nextBilling string

	cmd := &cobra.Command{
		Use:   "add <name> <price>",
		Short: "Add a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[1])
			}
			req.Name = args[0]
			req.Price = price
			if nextBilling != "" {
				req.NextBillingDate = &nextBilling
			}

			sub, err := apiClient.Subscriptions().Create(context.Background(), req)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) {
					if d, limited := apiErr.IsLimitExceeded(); limited {
						return fmt.Errorf("free plan limit of %d subscriptions reached; run 'paycal premium subscribe' to lift it", d.Limit)
					}
				}
				return fmt.Errorf("failed to add subscription: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), sub)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) with id %d\n", sub.Name, formatMoney(sub.Price, sub.Currency), sub.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Currency, "currency", "", "currency symbol: ₺, $ or €")
	cmd.Flags().StringVar(&req.Category, "category", "", "category")
	cmd.Flags().StringVar(&req.BillingCycle, "cycle", "", "billing cycle: weekly, monthly or yearly")
	cmd.Flags().StringVar(&nextBilling, "next-billing", "", "next billing date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&req.IsPrivate, "private", false, "hide from friends' feeds")

	return cmd
}

func newSubsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := apiClient.Subscriptions().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to remove subscription: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed subscription %d\n", id)
			return nil
		},
	}
}

func newSubsUseCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "use <id>",
		Short: "Record that a subscription was used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var usedAt *time.Time
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at time, want RFC3339: %w", err)
				}
				usedAt = &t
			}

			if err := apiClient.Subscriptions().LogUsage(context.Background(), id, usedAt); err != nil {
				return fmt.Errorf("failed to log usage: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usage logged for subscription %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "usage time in RFC3339 (default now)")
	return cmd
}
