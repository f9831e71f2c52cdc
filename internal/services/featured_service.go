package services

import (
	"context"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/featured"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/metrics"
)

// FeaturedService implements featured.Service
type FeaturedService struct {
	repo  featured.Repository
	tx    db.Transactor
	clock clock.Clock
}

// NewFeaturedService creates a new weekly featured service
func NewFeaturedService(repo featured.Repository, tx db.Transactor, clk clock.Clock) featured.Service {
	return &FeaturedService{repo: repo, tx: tx, clock: clk}
}

// Active returns the entries running today
func (s *FeaturedService) Active(ctx context.Context) ([]*featured.WeeklyFeatured, error) {
	today := s.clock.Now().Format(db.DateLayout)
	return s.repo.ListActive(ctx, today, featured.ActiveLimit)
}

// RecordImpression logs a view and bumps the counter atomically
func (s *FeaturedService) RecordImpression(ctx context.Context, id, userID int64) (int64, error) {
	var impressionID int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}

		var err error
		impressionID, err = s.repo.RecordImpression(ctx, id, userID, s.clock.Now())
		if err != nil {
			return err
		}
		return s.repo.IncrementImpressions(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	metrics.RecordFeaturedEvent(featured.EventImpression)
	return impressionID, nil
}

// RecordClick bumps the click counter
func (s *FeaturedService) RecordClick(ctx context.Context, id int64) error {
	if err := s.repo.IncrementClicks(ctx, id); err != nil {
		return err
	}
	metrics.RecordFeaturedEvent(featured.EventClick)
	return nil
}
