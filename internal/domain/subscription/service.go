package subscription

import (
	"context"
	"time"
)

// Service defines the interface for subscription business logic
type Service interface {
	// Create stores a subscription after the free-tier limit check
	Create(ctx context.Context, userID int64, s *Subscription) (*Subscription, error)

	// Get returns one of the user's subscriptions
	Get(ctx context.Context, userID, id int64) (*Subscription, error)

	// List returns the user's subscriptions, newest first
	List(ctx context.Context, userID int64) ([]*Subscription, error)

	// Update applies a partial update, recording price changes
	Update(ctx context.Context, userID, id int64, u Update) (*Subscription, error)

	// Delete removes a subscription
	Delete(ctx context.Context, userID, id int64) error

	// LogUsage records a use. A nil usedAt means now.
	LogUsage(ctx context.Context, userID, id int64, usedAt *time.Time) error
}
