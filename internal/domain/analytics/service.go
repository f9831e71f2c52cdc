package analytics

import (
	"context"

	"github.com/paycal/backend/internal/domain/subscription"
)

// Service defines the interface for spend and usage analytics
type Service interface {
	// Summary returns the normalised monthly total and counts
	Summary(ctx context.Context, userID int64) (*Summary, error)

	// Underused lists subscriptions not used within UnderusedDays
	Underused(ctx context.Context, userID int64) ([]*subscription.Subscription, error)

	// Usage reports daily usage of one subscription
	Usage(ctx context.Context, userID, id int64) (*UsageStats, error)

	// PriceHistory lists price changes of one subscription
	PriceHistory(ctx context.Context, userID, id int64) ([]*subscription.PriceChange, error)

	// Categories breaks spend down by category
	Categories(ctx context.Context, userID int64) ([]*CategoryBreakdown, error)

	// MonthlyTotal returns the normalised monthly total in lira
	MonthlyTotal(ctx context.Context, userID int64) (float64, error)
}
