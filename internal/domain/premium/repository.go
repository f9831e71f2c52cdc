package premium

import "context"

// Repository defines the interface for premium purchase records
type Repository interface {
	// CreatePurchase inserts a purchase and sets its ID
	CreatePurchase(ctx context.Context, p *Purchase) error

	// ListPurchases returns a user's purchases, newest first
	ListPurchases(ctx context.Context, userID int64) ([]*Purchase, error)
}
