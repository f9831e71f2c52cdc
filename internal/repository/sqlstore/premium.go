package sqlstore

import (
	"context"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/premium"
	"github.com/paycal/backend/internal/pkg/errors"
)

// PremiumRepository implements premium.Repository
type PremiumRepository struct {
	db db.DB
}

// NewPremiumRepository creates a new premium purchase repository
func NewPremiumRepository(d db.DB) premium.Repository {
	return &PremiumRepository{db: d}
}

// CreatePurchase records a premium purchase
func (r *PremiumRepository) CreatePurchase(ctx context.Context, p *premium.Purchase) error {
	if p.Status == "" {
		p.Status = premium.PurchaseStatusActive
	}

	res, err := db.Conn(ctx, r.db).Run(ctx, `
		INSERT INTO premium_subscriptions (user_id, plan_type, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`, p.UserID, string(p.Plan), p.StartDate, p.EndDate, p.Status)
	if err != nil {
		return errors.DatabaseError("Failed to record premium purchase", err)
	}

	id, err := insertedID(res, "premium purchase")
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// ListPurchases lists a user's purchases, newest first
func (r *PremiumRepository) ListPurchases(ctx context.Context, userID int64) ([]*premium.Purchase, error) {
	purchases := []*premium.Purchase{}
	err := db.Conn(ctx, r.db).All(ctx, `
		SELECT id, user_id, plan_type, start_date, end_date, status
		FROM premium_subscriptions
		WHERE user_id = ?
		ORDER BY start_date DESC, id DESC`,
		func(s db.Scanner) error {
			var (
				p          premium.Purchase
				plan       string
				start, end db.NullTime
			)
			if err := s.Scan(&p.ID, &p.UserID, &plan, &start, &end, &p.Status); err != nil {
				return err
			}
			p.Plan = premium.Plan(plan)
			p.StartDate = start.Time
			p.EndDate = end.Time
			purchases = append(purchases, &p)
			return nil
		}, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list premium purchases", err)
	}
	return purchases, nil
}
