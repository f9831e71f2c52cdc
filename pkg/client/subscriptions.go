package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SubscriptionService handles subscription API calls
type SubscriptionService struct {
	client *Client
}

// CreateSubscriptionRequest represents a request to add a subscription
type CreateSubscriptionRequest struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency,omitempty"`
	Category        string  `json:"category,omitempty"`
	Color           string  `json:"color,omitempty"`
	BillingCycle    string  `json:"billing_cycle,omitempty"`
	NextBillingDate *string `json:"next_billing_date,omitempty"`
	IsPrivate       bool    `json:"is_private,omitempty"`
}

// UpdateSubscriptionRequest is a partial update; nil fields are left alone
type UpdateSubscriptionRequest struct {
	Name            *string  `json:"name,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Color           *string  `json:"color,omitempty"`
	BillingCycle    *string  `json:"billing_cycle,omitempty"`
	NextBillingDate *string  `json:"next_billing_date,omitempty"`
	IsPrivate       *bool    `json:"is_private,omitempty"`
}

// List retrieves the caller's subscriptions, newest first
func (s *SubscriptionService) List(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/subscriptions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Get retrieves one subscription
func (s *SubscriptionService) Get(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/subscriptions/%d", id), nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create adds a subscription
func (s *SubscriptionService) Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/subscriptions", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update changes a subscription
func (s *SubscriptionService) Update(ctx context.Context, id int64, req UpdateSubscriptionRequest) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/subscriptions/%d", id), req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete removes a subscription
func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/subscriptions/%d", id), nil, nil)
}

// LogUsage records a use; a nil usedAt means now
func (s *SubscriptionService) LogUsage(ctx context.Context, id int64, usedAt *time.Time) error {
	var body interface{}
	if usedAt != nil {
		body = map[string]time.Time{"used_at": *usedAt}
	}
	return s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/subscriptions/%d/usage", id), body, nil)
}
