package activity

import "time"

// Entry is one item in a user's activity feed
type Entry struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	Type                 string    `json:"activity_type"`
	SubscriptionID       *int64    `json:"subscription_id,omitempty"`
	SubscriptionName     string    `json:"subscription_name"`
	SubscriptionPrice    *float64  `json:"subscription_price"`
	SubscriptionCurrency *string   `json:"subscription_currency"`
	CreatedAt            time.Time `json:"created_at"`
	UserName             string    `json:"user_name,omitempty"`
	UserEmail            string    `json:"user_email,omitempty"`
}

// Activity types
const (
	TypeSubscriptionAdded = "subscription_added"
	TypeSubscriptionUsed  = "subscription_used"
)

// PopularItem is a subscription several friends added
type PopularItem struct {
	SubscriptionName     string   `json:"subscription_name"`
	SubscriptionPrice    *float64 `json:"subscription_price"`
	SubscriptionCurrency *string  `json:"subscription_currency"`
	FriendCount          int      `json:"friend_count"`
	FriendNames          []string `json:"friend_names"`
}

// TrendingItem is a subscription many users added recently
type TrendingItem struct {
	SubscriptionName     string  `json:"subscription_name"`
	SubscriptionCurrency *string `json:"subscription_currency"`
	UserCount            int     `json:"user_count"`
	AvgPrice             float64 `json:"avg_price"`
}

// Suggestion is a friend's subscription in a given category
type Suggestion struct {
	SubscriptionName     string   `json:"subscription_name"`
	SubscriptionPrice    *float64 `json:"subscription_price"`
	SubscriptionCurrency *string  `json:"subscription_currency"`
	UsageCount           int      `json:"usage_count"`
}

// Limits on discovery lists
const (
	FriendActivityLimit = 50
	PopularLimit        = 10
	TrendingLimit       = 20
	TrendingDays        = 30
	SuggestionLimit     = 10
)
