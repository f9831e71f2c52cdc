package consent

import (
	"context"
	"time"
)

// Repository defines the interface for consent storage
type Repository interface {
	// Get returns the stored consent, or nil when none was given
	Get(ctx context.Context, userID int64) (*Consent, error)

	// Save inserts or updates the user's consent
	Save(ctx context.Context, userID int64, analytics bool, at time.Time) error
}
