package sqlstore

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/consent"
	"github.com/paycal/backend/internal/pkg/errors"
)

// ConsentRepository implements consent.Repository
type ConsentRepository struct {
	db db.DB
}

// NewConsentRepository creates a new consent repository
func NewConsentRepository(d db.DB) consent.Repository {
	return &ConsentRepository{db: d}
}

// Get returns the stored consent or nil
func (r *ConsentRepository) Get(ctx context.Context, userID int64) (*consent.Consent, error) {
	var (
		c                consent.Consent
		created, updated db.NullTime
	)
	err := db.Conn(ctx, r.db).Get(ctx,
		`SELECT user_id, analytics_consent, created_at, updated_at FROM user_consent WHERE user_id = ?`,
		func(s db.Scanner) error {
			return s.Scan(&c.UserID, &c.AnalyticsConsent, &created, &updated)
		}, userID)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get consent", err)
	}
	c.CreatedAt = created.Time
	c.UpdatedAt = updated.Time
	return &c, nil
}

// Save upserts the user's consent
func (r *ConsentRepository) Save(ctx context.Context, userID int64, analytics bool, at time.Time) error {
	_, err := db.Conn(ctx, r.db).Run(ctx, `
		INSERT INTO user_consent (user_id, analytics_consent, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			analytics_consent = excluded.analytics_consent,
			updated_at = excluded.updated_at`,
		userID, analytics, at, at)
	if err != nil {
		return errors.DatabaseError("Failed to save consent", err)
	}
	return nil
}
