package user

import "context"

// Service defines the interface for account business logic
type Service interface {
	// Register creates an account and returns it with a signed token
	Register(ctx context.Context, email, password, name string) (*User, string, error)

	// Login checks credentials and returns the user with a signed token
	Login(ctx context.Context, email, password string) (*User, string, error)

	// GetByID retrieves a user with is_premium derived at read time
	GetByID(ctx context.Context, id int64) (*User, error)

	// Search finds other users by email or name
	Search(ctx context.Context, callerID int64, query string) ([]Summary, error)
}
