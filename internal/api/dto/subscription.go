package dto

import (
	"time"

	"github.com/paycal/backend/internal/domain/subscription"
)

// CreateSubscriptionRequest represents a subscription creation request
type CreateSubscriptionRequest struct {
	Name            string     `json:"name" validate:"required,max=100"`
	Price           float64    `json:"price" validate:"required,gt=0"`
	Currency        string     `json:"currency" validate:"omitempty,currency"`
	Category        string     `json:"category" validate:"omitempty,max=50"`
	Color           string     `json:"color" validate:"omitempty,max=50"`
	BillingCycle    string     `json:"billing_cycle" validate:"omitempty,oneof=weekly monthly yearly"`
	NextBillingDate *string    `json:"next_billing_date" validate:"omitempty,date"`
	LastUsed        *time.Time `json:"last_used"`
	IsPrivate       bool       `json:"is_private"`
}

// ToSubscription converts the request into a domain value
func (r CreateSubscriptionRequest) ToSubscription() *subscription.Subscription {
	return &subscription.Subscription{
		Name:            r.Name,
		Price:           r.Price,
		Currency:        r.Currency,
		Category:        r.Category,
		Color:           r.Color,
		BillingCycle:    r.BillingCycle,
		NextBillingDate: DateOnly(r.NextBillingDate),
		LastUsed:        r.LastUsed,
		IsPrivate:       r.IsPrivate,
	}
}

// UpdateSubscriptionRequest represents a partial subscription update
type UpdateSubscriptionRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=100"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	Currency        *string  `json:"currency" validate:"omitempty,currency"`
	Category        *string  `json:"category" validate:"omitempty,max=50"`
	Color           *string  `json:"color" validate:"omitempty,max=50"`
	BillingCycle    *string  `json:"billing_cycle" validate:"omitempty,oneof=weekly monthly yearly"`
	NextBillingDate *string  `json:"next_billing_date" validate:"omitempty,date"`
	IsPrivate       *bool    `json:"is_private"`
}

// ToUpdate converts the request into a domain update
func (r UpdateSubscriptionRequest) ToUpdate() subscription.Update {
	return subscription.Update{
		Name:            r.Name,
		Price:           r.Price,
		Currency:        r.Currency,
		Category:        r.Category,
		Color:           r.Color,
		BillingCycle:    r.BillingCycle,
		NextBillingDate: DateOnly(r.NextBillingDate),
		IsPrivate:       r.IsPrivate,
	}
}

// LogUsageRequest represents a usage log request. UsedAt defaults to now.
type LogUsageRequest struct {
	UsedAt *time.Time `json:"used_at"`
}

// DateOnly trims an RFC 3339 timestamp down to its calendar date
func DateOnly(s *string) *string {
	if s == nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		d := t.Format("2006-01-02")
		return &d
	}
	v := *s
	return &v
}
