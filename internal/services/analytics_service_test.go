package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/errors"
)

func TestAnalyticsService_SingleSubscriptionSummary(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	e.addSub(t, u.ID, "Netflix", 349.99, subscription.CurrencyTRY)

	summary, err := e.analytics.Summary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "349.99", summary.TotalMonthly)
	assert.Equal(t, 1, summary.TotalSubscriptions)
	assert.Equal(t, 0, summary.UnderusedCount)
}

func TestAnalyticsService_SummaryNormalisesCurrencies(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	e.addSub(t, u.ID, "Netflix", 100, subscription.CurrencyTRY)
	e.addSub(t, u.ID, "ChatGPT", 20, subscription.CurrencyUSD)
	e.addSub(t, u.ID, "Notion", 10, subscription.CurrencyEUR)

	summary, err := e.analytics.Summary(ctx, u.ID)
	require.NoError(t, err)
	// 100 + 20*34 + 10*37
	assert.Equal(t, "1150.00", summary.TotalMonthly)
	assert.Equal(t, 3, summary.TotalSubscriptions)

	total, err := e.analytics.MonthlyTotal(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1150.0, total)
}

func TestAnalyticsService_EmptySummary(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "a@example.com", "A")

	summary, err := e.analytics.Summary(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.TotalMonthly)
	assert.Zero(t, summary.TotalSubscriptions)
}

func TestAnalyticsService_Underused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	day := 24 * time.Hour

	for _, tt := range []struct {
		name  string
		price float64
		ago   time.Duration
	}{
		{"Recent", 10, 29 * day},
		{"Boundary", 20, 30 * day},
		{"Stale", 30, 31 * day},
		{"Ancient", 40, 90 * day},
	} {
		_, err := e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: tt.name, Price: tt.price, LastUsed: e.ago(tt.ago)})
		require.NoError(t, err)
	}

	underused, err := e.analytics.Underused(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, underused, 2)
	assert.Equal(t, "Ancient", underused[0].Name)
	assert.Equal(t, "Stale", underused[1].Name)

	summary, err := e.analytics.Summary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.UnderusedCount)
}

func TestAnalyticsService_Usage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	other := e.register(t, "b@example.com", "B")
	s := e.addSub(t, u.ID, "Gym", 500, subscription.CurrencyTRY)

	for _, ago := range []time.Duration{time.Hour, 2 * time.Hour, 48 * time.Hour, 40 * 24 * time.Hour} {
		at := e.clock.Now().Add(-ago)
		require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, &at))
	}

	stats, err := e.analytics.Usage(ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, stats.Subscription.ID)
	require.Len(t, stats.Usage, 2)
	assert.Equal(t, "2024-06-15", stats.Usage[0].Date)
	assert.Equal(t, 2, stats.Usage[0].Count)
	assert.Equal(t, 3, stats.Stats.TotalUsage)
	assert.Equal(t, 2, stats.Stats.DaysActive)

	_, err = e.analytics.Usage(ctx, other.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	_, err = e.analytics.PriceHistory(ctx, other.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestAnalyticsService_Categories(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")

	for _, s := range []subscription.Subscription{
		{Name: "Netflix", Price: 150, Category: "Eğlence"},
		{Name: "Disney+", Price: 50, Category: "Eğlence"},
		{Name: "Copilot", Price: 10, Currency: subscription.CurrencyUSD, Category: "Yazılım"},
		{Name: "Gym", Price: 60, Category: "Spor"},
	} {
		s := s
		_, err := e.subs.Create(ctx, u.ID, &s)
		require.NoError(t, err)
	}

	cats, err := e.analytics.Categories(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cats, 3)

	assert.Equal(t, "Yazılım", cats[0].Category)
	assert.Equal(t, 340.0, cats[0].Total)
	assert.Equal(t, "Eğlence", cats[1].Category)
	assert.Equal(t, 2, cats[1].Count)
	assert.Equal(t, 200.0, cats[1].Total)
	assert.Equal(t, "Spor", cats[2].Category)

	sum := 0
	for _, c := range cats {
		sum += c.Percentage
	}
	assert.InDelta(t, 100, sum, 1)
}
