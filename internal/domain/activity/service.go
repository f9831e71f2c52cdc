package activity

import "context"

// Service defines the interface for the discovery surface built on the
// activity feed
type Service interface {
	// Feed lists friends' activity, newest first
	Feed(ctx context.Context, userID int64, limit, offset int) ([]*Entry, error)

	// Popular lists subscriptions most added by friends
	Popular(ctx context.Context, userID int64) ([]*PopularItem, error)

	// Trending lists subscriptions most added platform-wide recently
	Trending(ctx context.Context) ([]*TrendingItem, error)

	// Suggestions lists friends' subscriptions in a category
	Suggestions(ctx context.Context, userID int64, category string) ([]*Suggestion, error)

	// FriendActivity lists one friend's activity
	FriendActivity(ctx context.Context, userID, friendID int64) ([]*Entry, error)
}
