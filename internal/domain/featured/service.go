package featured

import "context"

// Service defines the interface for sponsored weekly entries
type Service interface {
	// Active lists the entries running today
	Active(ctx context.Context) ([]*WeeklyFeatured, error)

	// RecordImpression logs that userID saw an entry and returns the log ID
	RecordImpression(ctx context.Context, id, userID int64) (int64, error)

	// RecordClick counts a click on an entry
	RecordClick(ctx context.Context, id int64) error
}
