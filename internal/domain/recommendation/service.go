package recommendation

import "context"

// Service defines the interface for community recommendations
type Service interface {
	// SaveProfile stores the caller's occupation profile
	SaveProfile(ctx context.Context, p *Profile) error

	// GetProfile returns the caller's profile, nil when missing
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// Community lists subscriptions popular in the caller's group
	Community(ctx context.Context, userID int64) (*Community, error)
}
