package services

import (
	"context"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/premium"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/metrics"
)

// PremiumService implements premium.Service. Purchases are simulated;
// no payment provider is involved.
type PremiumService struct {
	users      user.Repository
	purchases  premium.Repository
	subs       subscription.Repository
	activities activity.Repository
	tx         db.Transactor
	clock      clock.Clock
	freeLimit  int
	logger     *logger.Logger
}

// NewPremiumService creates a new premium service
func NewPremiumService(
	users user.Repository,
	purchases premium.Repository,
	subs subscription.Repository,
	activities activity.Repository,
	tx db.Transactor,
	clk clock.Clock,
	freeLimit int,
	log *logger.Logger,
) premium.Service {
	return &PremiumService{
		users:      users,
		purchases:  purchases,
		subs:       subs,
		activities: activities,
		tx:         tx,
		clock:      clk,
		freeLimit:  freeLimit,
		logger:     log,
	}
}

// Status derives the premium state at the current time
func (s *PremiumService) Status(ctx context.Context, userID int64) (*premium.Status, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := premium.StateOf(u.IsPremium, u.PremiumExpiresAt, s.clock.Now())
	return &premium.Status{
		IsPremium: state == premium.StateActive,
		State:     state,
		ExpiresAt: u.PremiumExpiresAt,
	}, nil
}

// Subscribe activates a plan. The flag, the purchase record, the synthesised
// subscription and its activity entry are written in one transaction.
func (s *PremiumService) Subscribe(ctx context.Context, userID int64, plan premium.Plan) (*premium.Activation, error) {
	now := s.clock.Now()
	expires := plan.ExpiresAt(now)
	nextBilling := expires.Format(db.DateLayout)

	sub := &subscription.Subscription{
		UserID:          userID,
		Name:            plan.SubscriptionName(),
		Price:           plan.Price(),
		Currency:        subscription.CurrencyTRY,
		Category:        premium.SubscriptionCategory,
		Color:           premium.SubscriptionColor,
		BillingCycle:    string(plan),
		NextBillingDate: &nextBilling,
		LastUsed:        &now,
		CreatedAt:       now,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.users.SetPremium(ctx, userID, true, &expires); err != nil {
			return err
		}

		purchase := &premium.Purchase{
			UserID:    userID,
			Plan:      plan,
			StartDate: now,
			EndDate:   expires,
			Status:    premium.PurchaseStatusActive,
		}
		if err := s.purchases.CreatePurchase(ctx, purchase); err != nil {
			return err
		}

		if err := s.subs.Create(ctx, sub); err != nil {
			return err
		}
		return s.activities.Create(ctx, addedEntry(sub, now))
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPremiumActivation(string(plan))
	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    plan,
	}).Info("Premium activated")

	return &premium.Activation{
		Plan:              plan,
		ExpiresAt:         expires,
		SubscriptionAdded: true,
		SubscriptionID:    sub.ID,
	}, nil
}

// Cancel returns the user to the free tier
func (s *PremiumService) Cancel(ctx context.Context, userID int64) error {
	if err := s.users.SetPremium(ctx, userID, false, nil); err != nil {
		return err
	}

	s.logger.With("user_id", userID).Info("Premium cancelled")
	return nil
}

// Features returns the plan catalogue
func (s *PremiumService) Features() premium.Catalogue {
	return premium.Features(s.freeLimit)
}
