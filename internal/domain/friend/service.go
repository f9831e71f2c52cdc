package friend

import "context"

// Service defines the interface for friendship business logic
type Service interface {
	// SendRequest creates a request from one user to another
	SendRequest(ctx context.Context, from, to int64) (int64, error)

	// Accept accepts a pending request addressed to the user
	Accept(ctx context.Context, userID, requestID int64) error

	// Reject rejects a request addressed to the user
	Reject(ctx context.Context, userID, requestID int64) error

	// Incoming lists pending requests to the user
	Incoming(ctx context.Context, userID int64) ([]*Request, error)

	// Outgoing lists pending requests from the user
	Outgoing(ctx context.Context, userID int64) ([]*Request, error)

	// List lists the user's friends
	List(ctx context.Context, userID int64) ([]*Friend, error)

	// Remove ends a friendship from either side
	Remove(ctx context.Context, userID, friendID int64) error
}
