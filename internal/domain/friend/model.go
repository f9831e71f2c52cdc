package friend

import "time"

// Request is a friend request between two users
type Request struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Counterpart details, filled when listing
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Request statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Friend is one accepted friendship seen from one side
type Friend struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	FriendSince time.Time `json:"friend_since"`
}

// MinSearchLength is the shortest accepted user search
const MinSearchLength = 2
