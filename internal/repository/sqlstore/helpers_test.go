package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/testutil"
)

var now = testutil.Epoch

func seedUser(t *testing.T, d db.DB, email, name string) *user.User {
	t.Helper()

	u := &user.User{Email: email, Name: name, PasswordHash: "hash", CreatedAt: now}
	require.NoError(t, NewUserRepository(d).Create(context.Background(), u))
	return u
}

func seedSubscription(t *testing.T, d db.DB, userID int64, name string, price float64, currency, category string, lastUsed *time.Time) *subscription.Subscription {
	t.Helper()

	s := &subscription.Subscription{
		UserID:   userID,
		Name:     name,
		Price:    price,
		Currency: currency,
		Category: category,
		LastUsed: lastUsed,
	}
	s.ApplyDefaults()
	s.CreatedAt = now
	require.NoError(t, NewSubscriptionRepository(d).Create(context.Background(), s))
	return s
}

func timePtr(t time.Time) *time.Time { return &t }
