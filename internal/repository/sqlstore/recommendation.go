package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/recommendation"
	"github.com/paycal/backend/internal/pkg/errors"
)

// RecommendationRepository implements recommendation.Repository
type RecommendationRepository struct {
	db db.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(d db.DB) recommendation.Repository {
	return &RecommendationRepository{db: d}
}

// GetProfile returns the user's occupation profile or nil
func (r *RecommendationRepository) GetProfile(ctx context.Context, userID int64) (*recommendation.Profile, error) {
	var (
		p                     recommendation.Profile
		occupation, interests sql.NullString
		created, updated      db.NullTime
	)
	err := db.Conn(ctx, r.db).Get(ctx, `
		SELECT user_id, occupation, is_student, interests, created_at, updated_at
		FROM user_profiles WHERE user_id = ?`,
		func(s db.Scanner) error {
			return s.Scan(&p.UserID, &occupation, &p.IsStudent, &interests, &created, &updated)
		}, userID)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get profile", err)
	}
	p.Occupation = stringPtr(occupation)
	p.Interests = stringPtr(interests)
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return &p, nil
}

// SaveProfile upserts the user's occupation profile
func (r *RecommendationRepository) SaveProfile(ctx context.Context, p *recommendation.Profile, at time.Time) error {
	_, err := db.Conn(ctx, r.db).Run(ctx, `
		INSERT INTO user_profiles (user_id, occupation, is_student, interests, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			occupation = excluded.occupation,
			is_student = excluded.is_student,
			interests = excluded.interests,
			updated_at = excluded.updated_at`,
		p.UserID, p.Occupation, p.IsStudent, p.Interests, at, at)
	if err != nil {
		return errors.DatabaseError("Failed to save profile", err)
	}
	return nil
}

// Community groups subscriptions held by the matching group
func (r *RecommendationRepository) Community(ctx context.Context, occupation *string, students bool, limit int) ([]*recommendation.CommunityItem, error) {
	where := `up.occupation = ?`
	args := []interface{}{occupation}
	if students {
		where += ` OR up.is_student = ?`
		args = append(args, true)
	}
	args = append(args, limit)

	query := `
		SELECT s.name, s.category, s.currency, COUNT(DISTINCT s.user_id) AS user_count, AVG(s.price)
		FROM subscriptions s
		JOIN user_profiles up ON up.user_id = s.user_id
		WHERE ` + where + `
		GROUP BY s.name, s.category, s.currency
		ORDER BY user_count DESC, s.name
		LIMIT ?
	`

	items := []*recommendation.CommunityItem{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var it recommendation.CommunityItem
		if err := s.Scan(&it.SubscriptionName, &it.Category, &it.Currency, &it.UserCount, &it.AvgPrice); err != nil {
			return err
		}
		items = append(items, &it)
		return nil
	}, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get community recommendations", err)
	}
	return items, nil
}
