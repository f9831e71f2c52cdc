package services

import (
	"context"
	"strings"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/metrics"
)

// SubscriptionService implements subscription.Service
type SubscriptionService struct {
	repo       subscription.Repository
	users      user.Repository
	activities activity.Repository
	tx         db.Transactor
	clock      clock.Clock
	freeLimit  int
	logger     *logger.Logger
}

// NewSubscriptionService creates a new subscription service. freeLimit caps
// how many subscriptions a user without active premium may track.
func NewSubscriptionService(
	repo subscription.Repository,
	users user.Repository,
	activities activity.Repository,
	tx db.Transactor,
	clk clock.Clock,
	freeLimit int,
	log *logger.Logger,
) subscription.Service {
	return &SubscriptionService{
		repo:       repo,
		users:      users,
		activities: activities,
		tx:         tx,
		clock:      clk,
		freeLimit:  freeLimit,
		logger:     log,
	}
}

func validateSubscription(s *subscription.Subscription) error {
	if s.Name == "" {
		return errors.BadRequest("Name is required")
	}
	if s.Price <= 0 {
		return errors.BadRequest("Price must be greater than zero")
	}
	if !subscription.ValidCurrency(s.Currency) {
		return errors.BadRequest("Currency must be one of ₺, $, €")
	}
	return nil
}

// Create stores a subscription after checking the free-tier limit. The
// count, the insert and the activity entry share one transaction.
func (s *SubscriptionService) Create(ctx context.Context, userID int64, sub *subscription.Subscription) (*subscription.Subscription, error) {
	sub.UserID = userID
	sub.ApplyDefaults()
	if err := validateSubscription(sub); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sub.CreatedAt = now
	if sub.LastUsed == nil {
		sub.LastUsed = &now
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if !u.PremiumActive(now) {
			count, err := s.repo.CountByUser(ctx, userID)
			if err != nil {
				return err
			}
			if count >= s.freeLimit {
				metrics.RecordLimitRejection()
				return errors.LimitExceeded(s.freeLimit, count)
			}
		}

		if err := s.repo.Create(ctx, sub); err != nil {
			return err
		}

		if sub.IsPrivate {
			return nil
		}
		return s.activities.Create(ctx, addedEntry(sub, now))
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionCreated(sub.Currency)
	s.logger.WithFields(map[string]interface{}{
		"user_id":         userID,
		"subscription_id": sub.ID,
	}).Info("Subscription created")

	return sub, nil
}

func addedEntry(sub *subscription.Subscription, at time.Time) *activity.Entry {
	return activityEntry(activity.TypeSubscriptionAdded, sub, at)
}

func activityEntry(kind string, sub *subscription.Subscription, at time.Time) *activity.Entry {
	id, price, currency := sub.ID, sub.Price, sub.Currency
	return &activity.Entry{
		UserID:               sub.UserID,
		Type:                 kind,
		SubscriptionID:       &id,
		SubscriptionName:     sub.Name,
		SubscriptionPrice:    &price,
		SubscriptionCurrency: &currency,
		CreatedAt:            at,
	}
}

// Get returns one of the user's subscriptions
func (s *SubscriptionService) Get(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns the user's subscriptions
func (s *SubscriptionService) List(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update. A price change is written to the history
// before the update, inside the same transaction.
func (s *SubscriptionService) Update(ctx context.Context, userID, id int64, u subscription.Update) (*subscription.Subscription, error) {
	if u.Empty() {
		return nil, errors.BadRequest("No fields to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, errors.BadRequest("Name cannot be empty")
	}
	if u.Price != nil && *u.Price <= 0 {
		return nil, errors.BadRequest("Price must be greater than zero")
	}
	if u.Currency != nil && !subscription.ValidCurrency(*u.Currency) {
		return nil, errors.BadRequest("Currency must be one of ₺, $, €")
	}

	var updated *subscription.Subscription
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		if u.Price != nil && *u.Price != current.Price {
			change := &subscription.PriceChange{
				SubscriptionID: id,
				OldPrice:       current.Price,
				NewPrice:       *u.Price,
				ChangeDate:     s.clock.Now(),
			}
			if err := s.repo.AddPriceChange(ctx, change); err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, userID, id, u); err != nil {
			return err
		}

		updated, err = s.repo.GetByID(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a subscription with its usage logs and price history
func (s *SubscriptionService) Delete(ctx context.Context, userID, id int64) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":         userID,
		"subscription_id": id,
	}).Info("Subscription deleted")
	return nil
}

// LogUsage appends a usage log. An explicit usedAt never moves last_used
// backwards; without one, last_used becomes now.
func (s *SubscriptionService) LogUsage(ctx context.Context, userID, id int64, usedAt *time.Time) error {
	now := s.clock.Now()
	at, monotonic := now, false
	if usedAt != nil {
		at, monotonic = usedAt.UTC(), true
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		sub, err := s.repo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		log := &subscription.UsageLog{SubscriptionID: id, UsedAt: at, CreatedAt: now}
		if err := s.repo.AddUsage(ctx, log); err != nil {
			return err
		}
		if err := s.repo.TouchLastUsed(ctx, id, at, monotonic); err != nil {
			return err
		}

		if sub.IsPrivate {
			return nil
		}
		return s.activities.Create(ctx, activityEntry(activity.TypeSubscriptionUsed, sub, now))
	})
	if err != nil {
		return err
	}

	metrics.RecordUsageLogged()
	return nil
}
