package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/testutil"
)

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()

	owner := seedUser(t, d, "owner@example.com", "Owner")
	other := seedUser(t, d, "other@example.com", "Other")

	next := "2024-07-01"
	s := &subscription.Subscription{UserID: owner.ID, Name: "  Netflix ", Price: 349.99, NextBillingDate: &next, LastUsed: timePtr(now)}
	s.ApplyDefaults()
	require.NoError(t, repo.Create(ctx, s))
	require.NotZero(t, s.ID)

	got, err := repo.GetByID(ctx, owner.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got.Name)
	assert.Equal(t, 349.99, got.Price)
	assert.Equal(t, subscription.DefaultCurrency, got.Currency)
	assert.Equal(t, subscription.DefaultCategory, got.Category)
	assert.Equal(t, subscription.DefaultColor, got.Color)
	assert.Equal(t, subscription.DefaultBillingCycle, got.BillingCycle)
	require.NotNil(t, got.NextBillingDate)
	assert.Equal(t, "2024-07-01", *got.NextBillingDate)
	require.NotNil(t, got.LastUsed)
	assert.True(t, got.LastUsed.Equal(now))
	assert.False(t, got.IsPrivate)

	_, err = repo.GetByID(ctx, other.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "other users must not see it")

	n, err := repo.CountByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubscriptionRepository_ListNewestFirst(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")

	for i, name := range []string{"Spotify", "Netflix", "YouTube"} {
		s := &subscription.Subscription{UserID: u.ID, Name: name, Price: 10, CreatedAt: now.Add(time.Duration(i) * time.Hour)}
		s.ApplyDefaults()
		require.NoError(t, repo.Create(ctx, s))
	}

	subs, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "YouTube", subs[0].Name)
	assert.Equal(t, "Spotify", subs[2].Name)

	empty, err := repo.ListByUser(ctx, u.ID+100)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSubscriptionRepository_Update(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")
	s := seedSubscription(t, d, u.ID, "Netflix", 99.99, "₺", "Eğlence", nil)

	price := 149.99
	private := true
	empty := ""
	require.NoError(t, repo.Update(ctx, u.ID, s.ID, subscription.Update{Price: &price, IsPrivate: &private, NextBillingDate: &empty}))

	got, err := repo.GetByID(ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 149.99, got.Price)
	assert.True(t, got.IsPrivate)
	assert.Nil(t, got.NextBillingDate)
	assert.Equal(t, "Netflix", got.Name)

	err = repo.Update(ctx, u.ID, s.ID, subscription.Update{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	err = repo.Update(ctx, u.ID+1, s.ID, subscription.Update{Price: &price})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestSubscriptionRepository_PriceHistory(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")
	s := seedSubscription(t, d, u.ID, "Netflix", 99.99, "₺", "Eğlence", nil)

	require.NoError(t, repo.AddPriceChange(ctx, &subscription.PriceChange{SubscriptionID: s.ID, OldPrice: 99.99, NewPrice: 149.99, ChangeDate: now}))
	require.NoError(t, repo.AddPriceChange(ctx, &subscription.PriceChange{SubscriptionID: s.ID, OldPrice: 149.99, NewPrice: 199.99, ChangeDate: now.Add(time.Hour)}))

	history, err := repo.PriceHistory(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 199.99, history[0].NewPrice)
	assert.Equal(t, 99.99, history[1].OldPrice)
	assert.Equal(t, 149.99, history[1].NewPrice)
}

func TestSubscriptionRepository_DeleteCascades(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")
	other := seedUser(t, d, "o@example.com", "Other")
	s := seedSubscription(t, d, u.ID, "Netflix", 99.99, "₺", "Eğlence", nil)

	require.NoError(t, repo.AddUsage(ctx, &subscription.UsageLog{SubscriptionID: s.ID, UsedAt: now}))
	require.NoError(t, repo.AddPriceChange(ctx, &subscription.PriceChange{SubscriptionID: s.ID, OldPrice: 1, NewPrice: 2}))

	err := repo.Delete(ctx, other.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	n, err := repo.CountUsage(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a foreign delete must not touch usage logs")

	require.NoError(t, db.NewTransactor(d).InTx(ctx, func(ctx context.Context) error {
		return repo.Delete(ctx, u.ID, s.ID)
	}))

	n, err = repo.CountUsage(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	history, err := repo.PriceHistory(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = repo.GetByID(ctx, u.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestSubscriptionRepository_TouchLastUsed(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")
	s := seedSubscription(t, d, u.ID, "Netflix", 99.99, "₺", "Eğlence", nil)

	later := now
	earlier := now.AddDate(0, 0, -3)

	tests := []struct {
		name      string
		at        time.Time
		monotonic bool
		want      time.Time
	}{
		{"first use sets value", later, true, later},
		{"earlier use keeps later value", earlier, true, later},
		{"plain set moves backwards", earlier, false, earlier},
		{"later use advances", later, true, later},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.TouchLastUsed(ctx, s.ID, tt.at, tt.monotonic))

			got, err := repo.GetByID(ctx, u.ID, s.ID)
			require.NoError(t, err)
			require.NotNil(t, got.LastUsed)
			assert.True(t, got.LastUsed.Equal(tt.want), "got %v want %v", got.LastUsed, tt.want)
		})
	}

	err := repo.TouchLastUsed(ctx, s.ID+99, now, true)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestSubscriptionRepository_Underused(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")

	seedSubscription(t, d, u.ID, "Never", 10, "₺", "Diğer", nil)
	seedSubscription(t, d, u.ID, "Recent", 20, "₺", "Diğer", timePtr(now.AddDate(0, 0, -29)))
	seedSubscription(t, d, u.ID, "Boundary", 30, "₺", "Diğer", timePtr(now.AddDate(0, 0, -30)))
	seedSubscription(t, d, u.ID, "Stale", 40, "₺", "Diğer", timePtr(now.AddDate(0, 0, -31)))

	subs, err := repo.ListUnderused(ctx, u.ID, now, 30)
	require.NoError(t, err)

	names := []string{}
	for _, s := range subs {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Stale", "Never"}, names, "ordered by price, exactly 30 days is not underused")

	n, err := repo.CountUnderused(ctx, u.ID, now, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSubscriptionRepository_DailyUsage(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")
	s := seedSubscription(t, d, u.ID, "Netflix", 99.99, "₺", "Eğlence", nil)

	uses := []time.Time{
		now,
		now.Add(-time.Hour),
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -45),
	}
	for _, at := range uses {
		require.NoError(t, repo.AddUsage(ctx, &subscription.UsageLog{SubscriptionID: s.ID, UsedAt: at}))
	}

	usage, err := repo.DailyUsage(ctx, s.ID, now, 30)
	require.NoError(t, err)
	assert.Equal(t, []subscription.DailyUsage{
		{Date: "2024-06-15", Count: 2},
		{Date: "2024-06-13", Count: 1},
	}, usage)

	total, err := repo.CountUsage(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestSubscriptionRepository_Totals(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")

	seedSubscription(t, d, u.ID, "Netflix", 100, "₺", "Eğlence", nil)
	seedSubscription(t, d, u.ID, "Spotify", 50, "₺", "Müzik", nil)
	seedSubscription(t, d, u.ID, "GitHub", 4, "$", "Yazılım", nil)
	seedSubscription(t, d, u.ID, "Disney", 2, "€", "Eğlence", nil)

	byCurrency, err := repo.TotalsByCurrency(ctx, u.ID)
	require.NoError(t, err)
	got := map[string]float64{}
	for _, c := range byCurrency {
		got[c.Currency] = c.Total
	}
	assert.Equal(t, map[string]float64{"₺": 150, "$": 4, "€": 2}, got)

	byCategory, err := repo.TotalsByCategory(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 4, "Eğlence appears once per currency")

	none, err := repo.TotalsByCurrency(ctx, u.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubscriptionRepository_BillingDates(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "u@example.com", "User")

	past, future := "2024-06-01", "2024-07-01"
	for _, date := range []*string{&past, &future, nil} {
		s := &subscription.Subscription{UserID: u.ID, Name: "S", Price: 1, NextBillingDate: date}
		s.ApplyDefaults()
		require.NoError(t, repo.Create(ctx, s))
	}

	due, err := repo.ListBillingBefore(ctx, "2024-06-15")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "2024-06-01", *due[0].NextBillingDate)

	require.NoError(t, repo.SetNextBillingDate(ctx, due[0].ID, "2024-07-01"))
	due, err = repo.ListBillingBefore(ctx, "2024-06-15")
	require.NoError(t, err)
	assert.Empty(t, due)
}
