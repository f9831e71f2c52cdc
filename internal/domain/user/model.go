package user

import "time"

// User represents a registered account
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     string     `json:"-"` // Not exposed in JSON
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at,omitempty"`
	InviteToken      *string    `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Summary is the public view of another user
type Summary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Summary returns the public view of u
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, Name: u.Name}
}

// PremiumActive reports whether the stored premium flag is still in force at now.
// A premium user without an expiry date never lapses.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpiresAt == nil || u.PremiumExpiresAt.After(now)
}

// SearchLimit caps user search results
const SearchLimit = 20
