package services

import (
	"context"
	"strings"

	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/domain/recommendation"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/logger"
)

// RecommendationService implements recommendation.Service
type RecommendationService struct {
	repo   recommendation.Repository
	clock  clock.Clock
	logger *logger.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(repo recommendation.Repository, clk clock.Clock, log *logger.Logger) recommendation.Service {
	return &RecommendationService{
		repo:   repo,
		clock:  clk,
		logger: log,
	}
}

// SaveProfile upserts the caller's occupation profile
func (s *RecommendationService) SaveProfile(ctx context.Context, p *recommendation.Profile) error {
	p.Occupation = trimmedOrNil(p.Occupation)
	p.Interests = trimmedOrNil(p.Interests)

	if err := s.repo.SaveProfile(ctx, p, s.clock.Now()); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save occupation profile")
		return err
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// GetProfile returns the caller's profile, or nil when none was saved
func (s *RecommendationService) GetProfile(ctx context.Context, userID int64) (*recommendation.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Community lists what users in the caller's group subscribe to
func (s *RecommendationService) Community(ctx context.Context, userID int64) (*recommendation.Community, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || (p.Occupation == nil && !p.IsStudent) {
		return &recommendation.Community{Recommendations: []*recommendation.CommunityItem{}}, nil
	}

	items, err := s.repo.Community(ctx, p.Occupation, p.IsStudent, recommendation.CommunityLimit)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.AvgPrice = analytics.Round(it.AvgPrice, 2)
	}

	return &recommendation.Community{
		Recommendations: items,
		TargetGroup:     p.TargetGroup(),
	}, nil
}
