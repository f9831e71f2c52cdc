package featured

import (
	"context"
	"time"
)

// Repository defines the interface for weekly featured data access
type Repository interface {
	// Create inserts an entry and sets its ID
	Create(ctx context.Context, f *WeeklyFeatured) error

	// GetByID retrieves an entry
	GetByID(ctx context.Context, id int64) (*WeeklyFeatured, error)

	// ListActive returns active entries whose window contains the
	// YYYY-MM-DD date, best paying first
	ListActive(ctx context.Context, date string, limit int) ([]*WeeklyFeatured, error)

	// RecordImpression logs one impression and returns its ID
	RecordImpression(ctx context.Context, featuredID, userID int64, at time.Time) (int64, error)

	// IncrementImpressions bumps total_impressions
	IncrementImpressions(ctx context.Context, id int64) error

	// IncrementClicks bumps click_count
	IncrementClicks(ctx context.Context, id int64) error
}
