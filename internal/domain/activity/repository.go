package activity

import (
	"context"
	"time"
)

// Repository defines the interface for activity feed data access
type Repository interface {
	// Create appends an entry and sets its ID
	Create(ctx context.Context, e *Entry) error

	// Feed lists the activity of the user's friends, newest first
	Feed(ctx context.Context, userID int64, limit, offset int) ([]*Entry, error)

	// ListByUser lists one user's activity, newest first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Entry, error)

	// CountByUser counts one user's entries
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Popular groups subscriptions added by the user's friends
	Popular(ctx context.Context, userID int64, limit int) ([]*PopularItem, error)

	// Trending groups subscriptions added platform-wide within days before ref
	Trending(ctx context.Context, ref time.Time, days, limit int) ([]*TrendingItem, error)

	// Suggestions groups friends' subscriptions in one category
	Suggestions(ctx context.Context, userID int64, category string, limit int) ([]*Suggestion, error)
}
