package consent

import "context"

// Service defines the interface for consent handling
type Service interface {
	Status(ctx context.Context, userID int64) (*Status, error)
	Save(ctx context.Context, userID int64, analytics bool) error
}
