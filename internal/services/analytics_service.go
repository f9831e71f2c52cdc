package services

import (
	"context"
	"sort"

	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/clock"
)

// AnalyticsService implements analytics.Service
type AnalyticsService struct {
	subs  subscription.Repository
	rates analytics.RateProvider
	clock clock.Clock
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(subs subscription.Repository, rates analytics.RateProvider, clk clock.Clock) analytics.Service {
	return &AnalyticsService{subs: subs, rates: rates, clock: clk}
}

// MonthlyTotal sums all prices in lira
func (s *AnalyticsService) MonthlyTotal(ctx context.Context, userID int64) (float64, error) {
	totals, err := s.subs.TotalsByCurrency(ctx, userID)
	if err != nil {
		return 0, err
	}
	return analytics.Round(analytics.Normalize(s.rates, totals), 2), nil
}

// Summary returns the dashboard headline figures
func (s *AnalyticsService) Summary(ctx context.Context, userID int64) (*analytics.Summary, error) {
	totals, err := s.subs.TotalsByCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, t := range totals {
		count += t.Count
	}

	underused, err := s.subs.CountUnderused(ctx, userID, s.clock.Now(), analytics.UnderusedDays)
	if err != nil {
		return nil, err
	}

	return &analytics.Summary{
		TotalMonthly:       analytics.FormatAmount(analytics.Normalize(s.rates, totals)),
		TotalSubscriptions: count,
		UnderusedCount:     underused,
	}, nil
}

// Underused lists subscriptions not used within the window, most expensive first
func (s *AnalyticsService) Underused(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return s.subs.ListUnderused(ctx, userID, s.clock.Now(), analytics.UnderusedDays)
}

// Usage reports daily usage of one of the user's subscriptions
func (s *AnalyticsService) Usage(ctx context.Context, userID, id int64) (*analytics.UsageStats, error) {
	sub, err := s.subs.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	days, err := s.subs.DailyUsage(ctx, id, s.clock.Now(), analytics.UsageWindowDays)
	if err != nil {
		return nil, err
	}

	return &analytics.UsageStats{
		Subscription: sub,
		Usage:        days,
		Stats:        analytics.TotalsFromDaily(days, analytics.UsageWindowDays),
	}, nil
}

// PriceHistory lists price changes of one of the user's subscriptions
func (s *AnalyticsService) PriceHistory(ctx context.Context, userID, id int64) ([]*subscription.PriceChange, error) {
	if _, err := s.subs.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.subs.PriceHistory(ctx, id)
}

// Categories breaks spend down by category in lira, largest first
func (s *AnalyticsService) Categories(ctx context.Context, userID int64) ([]*analytics.CategoryBreakdown, error) {
	totals, err := s.subs.TotalsByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*analytics.CategoryBreakdown)
	var grand float64
	for _, t := range totals {
		amount := s.rates.ToLira(t.Total, t.Currency)
		grand += amount

		c, ok := byCategory[t.Category]
		if !ok {
			c = &analytics.CategoryBreakdown{Category: t.Category}
			byCategory[t.Category] = c
		}
		c.Count += t.Count
		c.Total += amount
	}

	out := make([]*analytics.CategoryBreakdown, 0, len(byCategory))
	for _, c := range byCategory {
		c.Percentage = analytics.Percentage(c.Total, grand)
		c.Total = analytics.Round(c.Total, 2)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
