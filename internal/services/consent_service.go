package services

import (
	"context"

	"github.com/paycal/backend/internal/domain/consent"
	"github.com/paycal/backend/internal/pkg/clock"
)

// ConsentService implements consent.Service
type ConsentService struct {
	repo  consent.Repository
	clock clock.Clock
}

// NewConsentService creates a new consent service
func NewConsentService(repo consent.Repository, clk clock.Clock) consent.Service {
	return &ConsentService{repo: repo, clock: clk}
}

// Status reports whether the user has answered the consent prompt
func (s *ConsentService) Status(ctx context.Context, userID int64) (*consent.Status, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &consent.Status{}, nil
	}
	return &consent.Status{HasConsented: true, AnalyticsConsent: c.AnalyticsConsent}, nil
}

// Save records the user's answer
func (s *ConsentService) Save(ctx context.Context, userID int64, analytics bool) error {
	return s.repo.Save(ctx, userID, analytics, s.clock.Now())
}
