package subscription

import (
	"strings"
	"time"
)

// Subscription is a recurring service a user pays for
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

// Currencies
const (
	CurrencyTRY = "₺"
	CurrencyUSD = "$"
	CurrencyEUR = "€"
)

// Billing cycles
const (
	CycleWeekly  = "weekly"
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Defaults applied on create
const (
	DefaultCurrency     = CurrencyTRY
	DefaultCategory     = "Diğer"
	DefaultColor        = "bg-blue-500"
	DefaultBillingCycle = CycleMonthly
)

// ValidCurrency reports whether c is one of the supported symbols
func ValidCurrency(c string) bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// ApplyDefaults fills empty optional fields
func (s *Subscription) ApplyDefaults() {
	s.Name = strings.TrimSpace(s.Name)
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.BillingCycle == "" {
		s.BillingCycle = DefaultBillingCycle
	}
}

// Update is a partial update; nil fields are left unchanged
type Update struct {
	Name            *string
	Price           *float64
	Currency        *string
	Category        *string
	Color           *string
	BillingCycle    *string
	NextBillingDate *string
	IsPrivate       *bool
}

// Empty reports whether the update changes nothing
func (u Update) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Currency == nil && u.Category == nil &&
		u.Color == nil && u.BillingCycle == nil && u.NextBillingDate == nil && u.IsPrivate == nil
}

// PriceChange records a price edit
type PriceChange struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	OldPrice       float64   `json:"old_price"`
	NewPrice       float64   `json:"new_price"`
	ChangeDate     time.Time `json:"change_date"`
}

// UsageLog is one recorded use of a subscription
type UsageLog struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	UsedAt         time.Time `json:"used_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyUsage counts uses on one calendar day
type DailyUsage struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CurrencyTotal is the sum of prices in one currency
type CurrencyTotal struct {
	Currency string
	Total    float64
	Count    int
}

// CategoryTotal is the sum of prices in one category and currency
type CategoryTotal struct {
	Category string
	Currency string
	Count    int
	Total    float64
}

// NextBillingDate advances date by whole cycles until it is on or after today.
// Unknown cycles are treated as monthly.
func NextBillingDate(date, today time.Time, cycle string) time.Time {
	for date.Before(today) {
		switch cycle {
		case CycleWeekly:
			date = date.AddDate(0, 0, 7)
		case CycleYearly:
			date = date.AddDate(1, 0, 0)
		default:
			date = date.AddDate(0, 1, 0)
		}
	}
	return date
}
