package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create inserts u and sets its ID. A taken email surfaces as a
	// unique violation from the store.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByInviteToken resolves an invite token to its owner
	GetByInviteToken(ctx context.Context, token string) (*User, error)

	// SetInviteToken stores a freshly generated invite token
	SetInviteToken(ctx context.Context, id int64, token string) error

	// UpdateName renames a user
	UpdateName(ctx context.Context, id int64, name string) error

	// SetPremium stores the premium flag and expiry. A nil expiry clears it.
	SetPremium(ctx context.Context, id int64, premium bool, expiresAt *time.Time) error

	// Search matches email or name, excluding one user
	Search(ctx context.Context, query string, excludeID int64, limit int) ([]Summary, error)
}
