package client

import (
	"context"
	"net/http"
)

// AnalyticsService handles spending reports
type AnalyticsService struct {
	client *Client
}

// Summary returns the monthly total across currencies
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Underused lists subscriptions not used for 30 days
func (s *AnalyticsService) Underused(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/analytics/underused", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Categories breaks spending down by category
func (s *AnalyticsService) Categories(ctx context.Context) ([]CategoryBreakdown, error) {
	var out []CategoryBreakdown
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/analytics/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
