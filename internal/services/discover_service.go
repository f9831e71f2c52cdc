package services

import (
	"context"

	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/errors"
)

// DiscoverService implements activity.Service on top of the activity
// log and the friend graph.
type DiscoverService struct {
	repo    activity.Repository
	friends friend.Repository
	clock   clock.Clock
}

// NewDiscoverService creates a new discover service
func NewDiscoverService(repo activity.Repository, friends friend.Repository, clk clock.Clock) activity.Service {
	return &DiscoverService{repo: repo, friends: friends, clock: clk}
}

// Feed pages through friends' activity, newest first
func (s *DiscoverService) Feed(ctx context.Context, userID int64, limit, offset int) ([]*activity.Entry, error) {
	if limit <= 0 || limit > activity.FriendActivityLimit {
		limit = activity.FriendActivityLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Feed(ctx, userID, limit, offset)
}

// Popular ranks subscriptions by how many friends added them
func (s *DiscoverService) Popular(ctx context.Context, userID int64) ([]*activity.PopularItem, error) {
	return s.repo.Popular(ctx, userID, activity.PopularLimit)
}

// Trending ranks subscriptions added across all users recently
func (s *DiscoverService) Trending(ctx context.Context) ([]*activity.TrendingItem, error) {
	return s.repo.Trending(ctx, s.clock.Now(), activity.TrendingDays, activity.TrendingLimit)
}

// Suggestions lists subscriptions in a category that the user does not track yet
func (s *DiscoverService) Suggestions(ctx context.Context, userID int64, category string) ([]*activity.Suggestion, error) {
	if category == "" {
		return nil, errors.BadRequest("Category is required")
	}
	return s.repo.Suggestions(ctx, userID, category, activity.SuggestionLimit)
}

// FriendActivity returns one friend's recent activity
func (s *DiscoverService) FriendActivity(ctx context.Context, userID, friendID int64) ([]*activity.Entry, error) {
	ok, err := s.friends.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Forbidden("You can only view your friends' activity")
	}
	return s.repo.ListByUser(ctx, friendID, activity.FriendActivityLimit)
}
