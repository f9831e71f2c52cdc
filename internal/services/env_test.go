package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/domain/consent"
	"github.com/paycal/backend/internal/domain/featured"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/invite"
	"github.com/paycal/backend/internal/domain/premium"
	"github.com/paycal/backend/internal/domain/profile"
	"github.com/paycal/backend/internal/domain/recommendation"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/repository/sqlstore"
	"github.com/paycal/backend/internal/testutil"
)

const testFreeLimit = 5

// env wires every service against one in-memory store and a fixed clock.
type env struct {
	db    db.DB
	clock *clock.Fixed

	userRepo     user.Repository
	subRepo      subscription.Repository
	activityRepo activity.Repository
	friendRepo   friend.Repository
	featuredRepo featured.Repository

	users          user.Service
	subs           subscription.Service
	analytics      analytics.Service
	premium        premium.Service
	friends        friend.Service
	discover       activity.Service
	featured       featured.Service
	profiles       profile.Service
	invites        invite.Service
	consents       consent.Service
	recommendation recommendation.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	d := testutil.NewTestDB(t)
	clk := testutil.NewClock()
	log := logger.Nop()
	tx := db.NewTransactor(d)

	e := &env{
		db:           d,
		clock:        clk,
		userRepo:     sqlstore.NewUserRepository(d),
		subRepo:      sqlstore.NewSubscriptionRepository(d),
		activityRepo: sqlstore.NewActivityRepository(d),
		friendRepo:   sqlstore.NewFriendRepository(d),
		featuredRepo: sqlstore.NewFeaturedRepository(d),
	}
	profileRepo := sqlstore.NewProfileRepository(d)

	e.users = NewUserService(e.userRepo, testAuth, clk, log)
	e.subs = NewSubscriptionService(e.subRepo, e.userRepo, e.activityRepo, tx, clk, testFreeLimit, log)
	e.analytics = NewAnalyticsService(e.subRepo, analytics.FixedRates{USD: 34, EUR: 37}, clk)
	e.premium = NewPremiumService(e.userRepo, sqlstore.NewPremiumRepository(d), e.subRepo, e.activityRepo, tx, clk, testFreeLimit, log)
	e.friends = NewFriendService(e.friendRepo, e.userRepo, profileRepo, tx, clk, log)
	e.discover = NewDiscoverService(e.activityRepo, e.friendRepo, clk)
	e.featured = NewFeaturedService(e.featuredRepo, tx, clk)
	e.profiles = NewProfileService(profileRepo, e.userRepo, e.subRepo, e.friendRepo, e.analytics)
	e.invites = NewInviteService(e.userRepo, e.friendRepo, e.friends)
	e.consents = NewConsentService(sqlstore.NewConsentRepository(d), clk)
	e.recommendation = NewRecommendationService(sqlstore.NewRecommendationRepository(d), clk, log)
	return e
}

func (e *env) register(t *testing.T, email, name string) *user.User {
	t.Helper()

	u, _, err := e.users.Register(context.Background(), email, "password", name)
	require.NoError(t, err)
	return u
}

func (e *env) addSub(t *testing.T, userID int64, name string, price float64, currency string) *subscription.Subscription {
	t.Helper()

	s, err := e.subs.Create(context.Background(), userID, &subscription.Subscription{
		Name:     name,
		Price:    price,
		Currency: currency,
	})
	require.NoError(t, err)
	return s
}

func (e *env) befriend(t *testing.T, a, b int64) {
	t.Helper()
	ctx := context.Background()

	id, err := e.friends.SendRequest(ctx, a, b)
	require.NoError(t, err)
	require.NoError(t, e.friends.Accept(ctx, b, id))
}

func (e *env) ago(d time.Duration) *time.Time {
	at := e.clock.Now().Add(-d)
	return &at
}
