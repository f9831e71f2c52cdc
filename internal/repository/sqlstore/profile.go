package sqlstore

import (
	"context"
	stderrors "errors"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/profile"
	"github.com/paycal/backend/internal/pkg/errors"
)

// ProfileRepository implements profile.Repository
type ProfileRepository struct {
	db db.DB
}

// NewProfileRepository creates a new privacy settings repository
func NewProfileRepository(d db.DB) profile.Repository {
	return &ProfileRepository{db: d}
}

// GetSettings returns stored settings or nil
func (r *ProfileRepository) GetSettings(ctx context.Context, userID int64) (*profile.Settings, error) {
	var s profile.Settings
	err := db.Conn(ctx, r.db).Get(ctx, `
		SELECT profile_public, show_subscriptions, show_spending, allow_friend_requests
		FROM user_settings WHERE user_id = ?`,
		func(sc db.Scanner) error {
			return sc.Scan(&s.ProfilePublic, &s.ShowSubscriptions, &s.ShowSpending, &s.AllowFriendRequests)
		}, userID)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get privacy settings", err)
	}
	return &s, nil
}

// SaveSettings upserts the user's settings
func (r *ProfileRepository) SaveSettings(ctx context.Context, userID int64, s profile.Settings) error {
	_, err := db.Conn(ctx, r.db).Run(ctx, `
		INSERT INTO user_settings (user_id, profile_public, show_subscriptions, show_spending, allow_friend_requests)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			profile_public = excluded.profile_public,
			show_subscriptions = excluded.show_subscriptions,
			show_spending = excluded.show_spending,
			allow_friend_requests = excluded.allow_friend_requests`,
		userID, s.ProfilePublic, s.ShowSubscriptions, s.ShowSpending, s.AllowFriendRequests)
	if err != nil {
		return errors.DatabaseError("Failed to save privacy settings", err)
	}
	return nil
}
