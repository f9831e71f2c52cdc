package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription data access.
// Every read and write is scoped to the owning user.
type Repository interface {
	// Create inserts s and sets its ID
	Create(ctx context.Context, s *Subscription) error

	// GetByID retrieves one of the user's subscriptions
	GetByID(ctx context.Context, userID, id int64) (*Subscription, error)

	// ListByUser returns the user's subscriptions, newest first
	ListByUser(ctx context.Context, userID int64) ([]*Subscription, error)

	// CountByUser counts the user's subscriptions
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Update applies a partial update
	Update(ctx context.Context, userID, id int64, u Update) error

	// Delete removes a subscription with its usage logs and price history
	Delete(ctx context.Context, userID, id int64) error

	// TouchLastUsed sets last_used to at. With monotonic set, an earlier at
	// never moves last_used backwards.
	TouchLastUsed(ctx context.Context, id int64, at time.Time, monotonic bool) error

	// AddUsage appends a usage log
	AddUsage(ctx context.Context, log *UsageLog) error

	// CountUsage counts all usage logs of a subscription
	CountUsage(ctx context.Context, id int64) (int, error)

	// DailyUsage groups usage logs in the days before ref by calendar day, newest first
	DailyUsage(ctx context.Context, id int64, ref time.Time, days int) ([]DailyUsage, error)

	// AddPriceChange appends a price history row
	AddPriceChange(ctx context.Context, c *PriceChange) error

	// PriceHistory returns price changes, newest first
	PriceHistory(ctx context.Context, id int64) ([]*PriceChange, error)

	// ListUnderused returns subscriptions unused for more than days before ref,
	// most expensive first
	ListUnderused(ctx context.Context, userID int64, ref time.Time, days int) ([]*Subscription, error)

	// CountUnderused counts what ListUnderused would return
	CountUnderused(ctx context.Context, userID int64, ref time.Time, days int) (int, error)

	// TotalsByCurrency sums prices per currency
	TotalsByCurrency(ctx context.Context, userID int64) ([]CurrencyTotal, error)

	// TotalsByCategory sums prices per category and currency
	TotalsByCategory(ctx context.Context, userID int64) ([]CategoryTotal, error)

	// ListBillingBefore returns subscriptions of all users whose next billing
	// date is before the given YYYY-MM-DD date
	ListBillingBefore(ctx context.Context, date string) ([]*Subscription, error)

	// SetNextBillingDate stores a new YYYY-MM-DD billing date
	SetNextBillingDate(ctx context.Context, id int64, date string) error
}
