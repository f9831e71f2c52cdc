package invite

import "context"

// Service defines the interface for invite links
type Service interface {
	// Get returns the caller's invite, creating a token on first use
	Get(ctx context.Context, userID int64) (*Invite, error)

	// Resolve looks up the owner of a token
	Resolve(ctx context.Context, userID int64, token string) (*Inviter, error)

	// Accept sends a friend request from the caller to the token owner
	Accept(ctx context.Context, userID int64, token string) (int64, error)
}
