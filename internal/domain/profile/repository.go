package profile

import "context"

// Repository defines the interface for privacy settings storage
type Repository interface {
	// GetSettings returns stored settings, or nil when the user never saved any
	GetSettings(ctx context.Context, userID int64) (*Settings, error)

	// SaveSettings inserts or replaces the user's settings
	SaveSettings(ctx context.Context, userID int64, s Settings) error
}
