package client

import "time"

// User is a Paycal account
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Subscription is a tracked recurring payment
type Subscription struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Price           float64    `json:"price"`
	Currency        string     `json:"currency"`
	Category        string     `json:"category"`
	Color           string     `json:"color"`
	BillingCycle    string     `json:"billing_cycle"`
	NextBillingDate *string    `json:"next_billing_date"`
	LastUsed        *time.Time `json:"last_used"`
	IsPrivate       bool       `json:"is_private"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Summary is the normalised monthly spend
type Summary struct {
	TotalMonthly       string `json:"totalMonthly"`
	TotalSubscriptions int    `json:"totalSubscriptions"`
	UnderusedCount     int    `json:"underusedCount"`
}

// CategoryBreakdown is one category's share of spend, in lira
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	Percentage int     `json:"percentage"`
}

// PremiumStatus is the caller's premium state
type PremiumStatus struct {
	IsPremium bool       `json:"is_premium"`
	State     string     `json:"state"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Activation is the result of a premium purchase
type Activation struct {
	Plan              string    `json:"plan"`
	ExpiresAt         time.Time `json:"expires_at"`
	SubscriptionAdded bool      `json:"subscription_added"`
	SubscriptionID    int64     `json:"subscription_id"`
}

// HealthResponse represents the liveness probe payload
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
