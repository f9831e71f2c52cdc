package client

import (
	"context"
	"net/http"
)

// PremiumService handles the premium plan
type PremiumService struct {
	client *Client
}

// Status returns the caller's premium state
func (s *PremiumService) Status(ctx context.Context) (*PremiumStatus, error) {
	var st PremiumStatus
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/premium/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Subscribe activates the monthly or yearly plan
func (s *PremiumService) Subscribe(ctx context.Context, plan string) (*Activation, error) {
	var a Activation
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/premium/subscribe", map[string]string{"plan": plan}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Cancel returns the caller to the free tier
func (s *PremiumService) Cancel(ctx context.Context) error {
	return s.client.doRequest(ctx, http.MethodPost, "/api/premium/cancel", nil, nil)
}
