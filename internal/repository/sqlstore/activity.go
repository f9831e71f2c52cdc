package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/pkg/errors"
)

// ActivityRepository implements activity.Repository
type ActivityRepository struct {
	db db.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(d db.DB) activity.Repository {
	return &ActivityRepository{db: d}
}

const entryColumns = `a.id, a.user_id, a.activity_type, a.subscription_id, a.subscription_name,
	a.subscription_price, a.subscription_currency, a.created_at, u.name, u.email`

func collectEntries(out *[]*activity.Entry) db.ScanFunc {
	return func(s db.Scanner) error {
		var (
			e        activity.Entry
			subID    sql.NullInt64
			price    sql.NullFloat64
			currency sql.NullString
			created  db.NullTime
		)
		err := s.Scan(&e.ID, &e.UserID, &e.Type, &subID, &e.SubscriptionName,
			&price, &currency, &created, &e.UserName, &e.UserEmail)
		if err != nil {
			return err
		}
		e.SubscriptionID = int64Ptr(subID)
		e.SubscriptionPrice = floatPtr(price)
		e.SubscriptionCurrency = stringPtr(currency)
		e.CreatedAt = created.Time
		*out = append(*out, &e)
		return nil
	}
}

// Create appends an activity entry
func (r *ActivityRepository) Create(ctx context.Context, e *activity.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activity_feed (user_id, activity_type, subscription_id, subscription_name,
			subscription_price, subscription_currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	res, err := db.Conn(ctx, r.db).Run(ctx, query,
		e.UserID, e.Type, e.SubscriptionID, e.SubscriptionName,
		e.SubscriptionPrice, e.SubscriptionCurrency, e.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to record activity", err)
	}

	id, err := insertedID(res, "activity")
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// Feed lists friends' activity, newest first
func (r *ActivityRepository) Feed(ctx context.Context, userID int64, limit, offset int) ([]*activity.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM activity_feed a
		JOIN users u ON u.id = a.user_id
		JOIN friends f ON f.friend_id = a.user_id AND f.user_id = ?
		WHERE a.user_id <> ?
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ? OFFSET ?
	`

	entries := []*activity.Entry{}
	if err := db.Conn(ctx, r.db).All(ctx, query, collectEntries(&entries), userID, userID, limit, offset); err != nil {
		return nil, errors.DatabaseError("Failed to get activity feed", err)
	}
	return entries, nil
}

// ListByUser lists one user's activity, newest first
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*activity.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM activity_feed a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?
	`

	entries := []*activity.Entry{}
	if err := db.Conn(ctx, r.db).All(ctx, query, collectEntries(&entries), userID, limit); err != nil {
		return nil, errors.DatabaseError("Failed to get user activity", err)
	}
	return entries, nil
}

// CountByUser counts one user's entries
func (r *ActivityRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := db.Conn(ctx, r.db).Get(ctx, `SELECT COUNT(*) FROM activity_feed WHERE user_id = ?`, scanCount(&n), userID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count activity", err)
	}
	return n, nil
}

// Popular groups subscriptions added by friends
func (r *ActivityRepository) Popular(ctx context.Context, userID int64, limit int) ([]*activity.PopularItem, error) {
	q := db.Conn(ctx, r.db)

	query := `
		SELECT a.subscription_name, AVG(a.subscription_price), a.subscription_currency,
			COUNT(DISTINCT a.user_id) AS friend_count, ` + q.Dialect().GroupConcatDistinct("u.name") + `
		FROM activity_feed a
		JOIN users u ON u.id = a.user_id
		JOIN friends f ON f.friend_id = a.user_id AND f.user_id = ?
		WHERE a.activity_type = ?
		GROUP BY a.subscription_name, a.subscription_currency
		ORDER BY friend_count DESC, a.subscription_name
		LIMIT ?
	`

	items := []*activity.PopularItem{}
	err := q.All(ctx, query, func(s db.Scanner) error {
		var (
			it       activity.PopularItem
			price    sql.NullFloat64
			currency sql.NullString
			names    sql.NullString
		)
		if err := s.Scan(&it.SubscriptionName, &price, &currency, &it.FriendCount, &names); err != nil {
			return err
		}
		it.SubscriptionPrice = floatPtr(price)
		it.SubscriptionCurrency = stringPtr(currency)
		it.FriendNames = splitNames(names)
		items = append(items, &it)
		return nil
	}, userID, activity.TypeSubscriptionAdded, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get popular subscriptions", err)
	}
	return items, nil
}

func splitNames(ns sql.NullString) []string {
	if !ns.Valid || ns.String == "" {
		return []string{}
	}
	return strings.Split(ns.String, ",")
}

// Trending groups subscriptions added platform-wide in the window before ref
func (r *ActivityRepository) Trending(ctx context.Context, ref time.Time, days, limit int) ([]*activity.TrendingItem, error) {
	q := db.Conn(ctx, r.db)

	query := `
		SELECT subscription_name, subscription_currency, COUNT(DISTINCT user_id) AS user_count,
			COALESCE(AVG(subscription_price), 0)
		FROM activity_feed
		WHERE activity_type = ? AND ` + q.Dialect().WithinDays("created_at", days, true) + `
		GROUP BY subscription_name, subscription_currency
		ORDER BY user_count DESC, subscription_name
		LIMIT ?
	`

	items := []*activity.TrendingItem{}
	err := q.All(ctx, query, func(s db.Scanner) error {
		var (
			it       activity.TrendingItem
			currency sql.NullString
		)
		if err := s.Scan(&it.SubscriptionName, &currency, &it.UserCount, &it.AvgPrice); err != nil {
			return err
		}
		it.SubscriptionCurrency = stringPtr(currency)
		items = append(items, &it)
		return nil
	}, activity.TypeSubscriptionAdded, ref, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get trending subscriptions", err)
	}
	return items, nil
}

// Suggestions groups friends' subscriptions in a category
func (r *ActivityRepository) Suggestions(ctx context.Context, userID int64, category string, limit int) ([]*activity.Suggestion, error) {
	query := `
		SELECT a.subscription_name, AVG(a.subscription_price), a.subscription_currency,
			COUNT(DISTINCT a.user_id) AS usage_count
		FROM activity_feed a
		JOIN subscriptions s ON s.id = a.subscription_id
		JOIN friends f ON f.friend_id = a.user_id AND f.user_id = ?
		WHERE s.category = ? AND a.activity_type = ?
		GROUP BY a.subscription_name, a.subscription_currency
		ORDER BY usage_count DESC, a.subscription_name
		LIMIT ?
	`

	items := []*activity.Suggestion{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var (
			it       activity.Suggestion
			price    sql.NullFloat64
			currency sql.NullString
		)
		if err := s.Scan(&it.SubscriptionName, &price, &currency, &it.UsageCount); err != nil {
			return err
		}
		it.SubscriptionPrice = floatPtr(price)
		it.SubscriptionCurrency = stringPtr(currency)
		items = append(items, &it)
		return nil
	}, userID, category, activity.TypeSubscriptionAdded, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get suggestions", err)
	}
	return items, nil
}
