package profile

import "time"

// Settings are a user's privacy preferences
type Settings struct {
	ProfilePublic       bool `json:"profile_public"`
	ShowSubscriptions   bool `json:"show_subscriptions"`
	ShowSpending        bool `json:"show_spending"`
	AllowFriendRequests bool `json:"allow_friend_requests"`
}

// DefaultSettings apply to users who never saved any
func DefaultSettings() Settings {
	return Settings{
		ProfilePublic:       true,
		ShowSubscriptions:   true,
		ShowSpending:        false,
		AllowFriendRequests: true,
	}
}

// SettingsUpdate is a partial settings change; nil fields keep their value
type SettingsUpdate struct {
	ProfilePublic       *bool `json:"profile_public"`
	ShowSubscriptions   *bool `json:"show_subscriptions"`
	ShowSpending        *bool `json:"show_spending"`
	AllowFriendRequests *bool `json:"allow_friend_requests"`
}

// Apply returns s with the non-nil fields of u
func (s Settings) Apply(u SettingsUpdate) Settings {
	if u.ProfilePublic != nil {
		s.ProfilePublic = *u.ProfilePublic
	}
	if u.ShowSubscriptions != nil {
		s.ShowSubscriptions = *u.ShowSubscriptions
	}
	if u.ShowSpending != nil {
		s.ShowSpending = *u.ShowSpending
	}
	if u.AllowFriendRequests != nil {
		s.AllowFriendRequests = *u.AllowFriendRequests
	}
	return s
}

// Stats are the counters shown on the owner's profile
type Stats struct {
	SubscriptionCount int     `json:"subscription_count"`
	TotalMonthly      float64 `json:"total_monthly"`
	FriendCount       int     `json:"friend_count"`
}

// Profile is the owner's own view
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Settings
	Stats Stats `json:"stats"`
}

// PublicStats are hidden field by field per the owner's settings
type PublicStats struct {
	SubscriptionCount *int     `json:"subscription_count"`
	TotalMonthly      *float64 `json:"total_monthly"`
}

// PublicProfile is another user's view of a profile
type PublicProfile struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	IsFriend bool        `json:"is_friend"`
	Stats    PublicStats `json:"stats"`
}

// MinNameLength is the shortest accepted display name
const MinNameLength = 2
