package premium

import "context"

// Service defines the interface for premium gating
type Service interface {
	// Status returns the caller's premium state
	Status(ctx context.Context, userID int64) (*Status, error)

	// Subscribe activates a plan
	Subscribe(ctx context.Context, userID int64, plan Plan) (*Activation, error)

	// Cancel returns the user to the free tier
	Cancel(ctx context.Context, userID int64) error

	// Features returns the plan catalogue
	Features() Catalogue
}
