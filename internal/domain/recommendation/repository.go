package recommendation

import (
	"context"
	"time"
)

// Repository defines the interface for occupation profiles and
// community aggregates
type Repository interface {
	// GetProfile returns the user's profile, or nil when none was saved
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// SaveProfile inserts or replaces the user's profile
	SaveProfile(ctx context.Context, p *Profile, at time.Time) error

	// Community groups subscriptions of users sharing the occupation, or of
	// all students when students is set, most shared first
	Community(ctx context.Context, occupation *string, students bool, limit int) ([]*CommunityItem, error)
}
