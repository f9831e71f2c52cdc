package profile

import "context"

// Service defines the interface for profiles and privacy
type Service interface {
	// Me returns the caller's profile with settings and stats
	Me(ctx context.Context, userID int64) (*Profile, error)

	// View returns another user's profile as seen by the viewer
	View(ctx context.Context, viewerID, userID int64) (*PublicProfile, error)

	// Rename changes the caller's display name and returns the stored value
	Rename(ctx context.Context, userID int64, name string) (string, error)

	// Settings returns the caller's settings, defaults when never saved
	Settings(ctx context.Context, userID int64) (Settings, error)

	// UpdateSettings merges a partial change into the caller's settings
	UpdateSettings(ctx context.Context, userID int64, u SettingsUpdate) (Settings, error)
}
