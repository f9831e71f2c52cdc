package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/profile"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/errors"
)

// ProfileService implements profile.Service
type ProfileService struct {
	repo      profile.Repository
	users     user.Repository
	subs      subscription.Repository
	friends   friend.Repository
	analytics analytics.Service
}

// NewProfileService creates a new profile service
func NewProfileService(
	repo profile.Repository,
	users user.Repository,
	subs subscription.Repository,
	friends friend.Repository,
	analyticsSvc analytics.Service,
) profile.Service {
	return &ProfileService{
		repo:      repo,
		users:     users,
		subs:      subs,
		friends:   friends,
		analytics: analyticsSvc,
	}
}

// Me returns the caller's own profile with settings and stats
func (s *ProfileService) Me(ctx context.Context, userID int64) (*profile.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.subs.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.analytics.MonthlyTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	friends, err := s.friends.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &profile.Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		Settings:  settings,
		Stats: profile.Stats{
			SubscriptionCount: count,
			TotalMonthly:      total,
			FriendCount:       friends,
		},
	}, nil
}

// View returns another user's profile as seen by viewerID
func (s *ProfileService) View(ctx context.Context, viewerID, userID int64) (*profile.PublicProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	isFriend, err := s.friends.AreFriends(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	if !settings.ProfilePublic && !isFriend && viewerID != userID {
		return nil, errors.Forbidden("This profile is private")
	}

	out := &profile.PublicProfile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsFriend: isFriend,
	}

	if settings.ShowSubscriptions {
		count, err := s.subs.CountByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Stats.SubscriptionCount = &count
	}
	if settings.ShowSpending {
		total, err := s.analytics.MonthlyTotal(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Stats.TotalMonthly = &total
	}

	return out, nil
}

// Rename changes the display name
func (s *ProfileService) Rename(ctx context.Context, userID int64, name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < profile.MinNameLength {
		return "", errors.BadRequest("Name must be at least 2 characters")
	}
	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		return "", err
	}
	return name, nil
}

// Settings returns stored settings, or the defaults when none were saved
func (s *ProfileService) Settings(ctx context.Context, userID int64) (profile.Settings, error) {
	stored, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return profile.Settings{}, err
	}
	if stored == nil {
		return profile.DefaultSettings(), nil
	}
	return *stored, nil
}

// UpdateSettings merges a partial update over the current settings
func (s *ProfileService) UpdateSettings(ctx context.Context, userID int64, u profile.SettingsUpdate) (profile.Settings, error) {
	current, err := s.Settings(ctx, userID)
	if err != nil {
		return profile.Settings{}, err
	}

	next := current.Apply(u)
	if err := s.repo.SaveSettings(ctx, userID, next); err != nil {
		return profile.Settings{}, err
	}
	return next, nil
}
