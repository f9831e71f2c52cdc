package friend

import (
	"context"
	"time"
)

// Repository defines the interface for friendship data access
type Repository interface {
	// AreFriends reports whether a friendship row links the two users
	AreFriends(ctx context.Context, a, b int64) (bool, error)

	// RequestExists reports whether a pending request links the two users in either direction
	RequestExists(ctx context.Context, a, b int64) (bool, error)

	// CreateRequest inserts a pending request and returns its ID
	CreateRequest(ctx context.Context, from, to int64, at time.Time) (int64, error)

	// GetPending returns a pending request addressed to toUserID
	GetPending(ctx context.Context, id, toUserID int64) (*Request, error)

	// SetStatus changes the status of a request addressed to toUserID
	SetStatus(ctx context.Context, id, toUserID int64, status string, at time.Time) error

	// Link inserts both directions of a friendship
	Link(ctx context.Context, a, b int64, at time.Time) error

	// Unlink removes both directions and returns the number of rows removed
	Unlink(ctx context.Context, a, b int64) (int64, error)

	// Incoming lists pending requests to the user
	Incoming(ctx context.Context, userID int64) ([]*Request, error)

	// Outgoing lists pending requests from the user
	Outgoing(ctx context.Context, userID int64) ([]*Request, error)

	// List lists the user's friends ordered by name
	List(ctx context.Context, userID int64) ([]*Friend, error)

	// Count counts the user's friends
	Count(ctx context.Context, userID int64) (int, error)
}
