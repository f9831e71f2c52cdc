package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Spending reports",
	}

	cmd.AddCommand(newAnalyticsSummaryCmd())
	cmd.AddCommand(newAnalyticsUnderusedCmd())
	cmd.AddCommand(newAnalyticsCategoriesCmd())

	return cmd
}

func newAnalyticsSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Monthly total across all currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Analytics().Summary(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monthly total:  %s₺\n", summary.TotalMonthly)
			fmt.Fprintf(out, "Subscriptions:  %d\n", summary.TotalSubscriptions)
			fmt.Fprintf(out, "Underused:      %d\n", summary.UnderusedCount)
			return nil
		},
	}
}

func newAnalyticsUnderusedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "underused",
		Short: "Subscriptions not used in the last 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := apiClient.Analytics().Underused(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list underused subscriptions: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), subs)
			}

			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Every subscription was used in the last 30 days.")
				return nil
			}

			now := time.Now()
			table := NewTable("ID", "NAME", "PRICE", "LAST USED")
			for _, s := range subs {
				table.AddRow(strconv.FormatInt(s.ID, 10), truncate(s.Name, 30), formatMoney(s.Price, s.Currency), formatLastUsed(s.LastUsed, now))
			}
			table.Render(cmd.OutOrStdout())
			return nil
		},
	}
}

func newAnalyticsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Spending by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown, err := apiClient.Analytics().Categories(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(cmd.OutOrStdout(), breakdown)
			}

			table := NewTable("CATEGORY", "COUNT", "TOTAL", "SHARE")
			for _, c := range breakdown {
				table.AddRow(c.Category, strconv.Itoa(c.Count), formatMoney(c.Total, "₺"), strconv.Itoa(c.Percentage)+"%")
			}
			table.Render(cmd.OutOrStdout())
			return nil
		},
	}
}
