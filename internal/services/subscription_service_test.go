package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/errors"
)

func TestSubscriptionService_CreateDefaults(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "a@example.com", "A")

	s, err := e.subs.Create(context.Background(), u.ID, &subscription.Subscription{Name: "  Netflix ", Price: 349.99})
	require.NoError(t, err)

	assert.Equal(t, "Netflix", s.Name)
	assert.Equal(t, subscription.CurrencyTRY, s.Currency)
	assert.Equal(t, subscription.DefaultCategory, s.Category)
	assert.Equal(t, subscription.DefaultColor, s.Color)
	assert.Equal(t, subscription.CycleMonthly, s.BillingCycle)
	require.NotNil(t, s.LastUsed)
	assert.True(t, s.LastUsed.Equal(e.clock.Now()))

	entries, err := e.activityRepo.ListByUser(context.Background(), u.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.TypeSubscriptionAdded, entries[0].Type)
	assert.Equal(t, "Netflix", entries[0].SubscriptionName)
}

func TestSubscriptionService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "a@example.com", "A")

	tests := []struct {
		name string
		sub  subscription.Subscription
	}{
		{"blank name", subscription.Subscription{Name: "   ", Price: 10}},
		{"zero price", subscription.Subscription{Name: "X", Price: 0}},
		{"negative price", subscription.Subscription{Name: "X", Price: -1}},
		{"unknown currency", subscription.Subscription{Name: "X", Price: 10, Currency: "£"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := tt.sub
			_, err := e.subs.Create(context.Background(), u.ID, &sub)
			assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest), "got %v", err)
		})
	}
}

func TestSubscriptionService_PrivateSkipsActivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")

	s, err := e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: "Secret", Price: 5, IsPrivate: true})
	require.NoError(t, err)
	require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, nil))

	n, err := e.activityRepo.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubscriptionService_FreeLimit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")

	for i := 0; i < testFreeLimit; i++ {
		e.addSub(t, u.ID, "Service", 10, subscription.CurrencyTRY)
	}

	_, err := e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: "Sixth", Price: 10})
	require.Error(t, err)
	appErr := errors.FromError(err, "")
	assert.Equal(t, errors.ErrCodeLimitExceeded, appErr.Code)
	assert.Equal(t, 403, appErr.StatusCode)
	assert.Equal(t, errors.LimitDetails{UpgradeRequired: true, Limit: testFreeLimit, Current: testFreeLimit}, appErr.Details)

	count, err := e.subRepo.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, testFreeLimit, count)

	expires := e.clock.Now().Add(24 * time.Hour)
	require.NoError(t, e.userRepo.SetPremium(ctx, u.ID, true, &expires))

	_, err = e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: "Sixth", Price: 10})
	require.NoError(t, err)

	// Expired premium falls back to the cap.
	e.clock.Advance(48 * time.Hour)
	_, err = e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: "Seventh", Price: 10})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLimitExceeded))
}

func TestSubscriptionService_Ownership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@example.com", "Owner")
	other := e.register(t, "other@example.com", "Other")
	s := e.addSub(t, owner.ID, "Spotify", 59.99, subscription.CurrencyTRY)

	_, err := e.subs.Get(ctx, other.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	name := "Hijacked"
	_, err = e.subs.Update(ctx, other.ID, s.ID, subscription.Update{Name: &name})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	assert.True(t, errors.IsCode(e.subs.Delete(ctx, other.ID, s.ID), errors.ErrCodeNotFound))
	assert.True(t, errors.IsCode(e.subs.LogUsage(ctx, other.ID, s.ID, nil), errors.ErrCodeNotFound))

	got, err := e.subs.Get(ctx, owner.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spotify", got.Name)
}

func TestSubscriptionService_UpdateRecordsPriceChange(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	s := e.addSub(t, u.ID, "YouTube", 99.99, subscription.CurrencyTRY)

	price := 149.99
	updated, err := e.subs.Update(ctx, u.ID, s.ID, subscription.Update{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 149.99, updated.Price)

	same := 149.99
	_, err = e.subs.Update(ctx, u.ID, s.ID, subscription.Update{Price: &same})
	require.NoError(t, err)

	history, err := e.analytics.PriceHistory(ctx, u.ID, s.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 99.99, history[0].OldPrice)
	assert.Equal(t, 149.99, history[0].NewPrice)

	_, err = e.subs.Update(ctx, u.ID, s.ID, subscription.Update{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestSubscriptionService_LogUsageMonotonic(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")

	s, err := e.subs.Create(ctx, u.ID, &subscription.Subscription{Name: "Gym", Price: 500, LastUsed: e.ago(60 * 24 * time.Hour)})
	require.NoError(t, err)

	t1 := e.clock.Now().Add(-24 * time.Hour)
	t0 := e.clock.Now().Add(-72 * time.Hour)
	require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, &t1))
	require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, &t0))

	got, err := e.subs.Get(ctx, u.ID, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastUsed)
	assert.True(t, got.LastUsed.Equal(t1), "last_used = %v, want %v", got.LastUsed, t1)

	n, err := e.subRepo.CountUsage(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, nil))
	got, err = e.subs.Get(ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUsed.Equal(e.clock.Now()))
}

func TestSubscriptionService_DeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "a@example.com", "A")
	s := e.addSub(t, u.ID, "Disney+", 134.99, subscription.CurrencyTRY)

	require.NoError(t, e.subs.LogUsage(ctx, u.ID, s.ID, nil))
	price := 164.99
	_, err := e.subs.Update(ctx, u.ID, s.ID, subscription.Update{Price: &price})
	require.NoError(t, err)

	require.NoError(t, e.subs.Delete(ctx, u.ID, s.ID))

	_, err = e.subs.Get(ctx, u.ID, s.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	n, err := e.subRepo.CountUsage(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	history, err := e.subRepo.PriceHistory(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.True(t, errors.IsCode(e.subs.Delete(ctx, u.ID, s.ID), errors.ErrCodeNotFound))
}
