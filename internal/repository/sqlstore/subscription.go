package sqlstore

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/errors"
)

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db db.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(d db.DB) subscription.Repository {
	return &SubscriptionRepository{db: d}
}

const subscriptionColumns = `id, user_id, name, price, currency, category, color, billing_cycle,
	next_billing_date, last_used, is_private, created_at`

func scanSubscription(sub *subscription.Subscription) db.ScanFunc {
	return func(s db.Scanner) error {
		var next, lastUsed, created db.NullTime
		err := s.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Price, &sub.Currency, &sub.Category,
			&sub.Color, &sub.BillingCycle, &next, &lastUsed, &sub.IsPrivate, &created)
		if err != nil {
			return err
		}
		sub.NextBillingDate = next.DatePtr()
		sub.LastUsed = lastUsed.Ptr()
		sub.CreatedAt = created.Time
		return nil
	}
}

func collectSubscriptions(out *[]*subscription.Subscription) db.ScanFunc {
	return func(s db.Scanner) error {
		var sub subscription.Subscription
		if err := scanSubscription(&sub)(s); err != nil {
			return err
		}
		*out = append(*out, &sub)
		return nil
	}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO subscriptions (user_id, name, price, currency, category, color, billing_cycle,
			next_billing_date, last_used, is_private, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	res, err := db.Conn(ctx, r.db).Run(ctx, query,
		s.UserID, s.Name, s.Price, s.Currency, s.Category, s.Color, s.BillingCycle,
		emptyToNil(s.NextBillingDate), s.LastUsed, s.IsPrivate, s.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create subscription", err)
	}

	id, err := insertedID(res, "subscription")
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetByID retrieves one of the user's subscriptions
func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	var s subscription.Subscription
	err := db.Conn(ctx, r.db).Get(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ? AND user_id = ?`,
		scanSubscription(&s), id, userID)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, errors.NotFound("Subscription")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subscription", err)
	}
	return &s, nil
}

// ListByUser lists the user's subscriptions, newest first
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	subs := []*subscription.Subscription{}
	err := db.Conn(ctx, r.db).All(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		collectSubscriptions(&subs), userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}
	return subs, nil
}

// CountByUser counts the user's subscriptions
func (r *SubscriptionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := db.Conn(ctx, r.db).Get(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = ?`, scanCount(&n), userID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count subscriptions", err)
	}
	return n, nil
}

// Update applies the non-nil fields of u
func (r *SubscriptionRepository) Update(ctx context.Context, userID, id int64, u subscription.Update) error {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, v interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}

	if u.Name != nil {
		set("name", strings.TrimSpace(*u.Name))
	}
	if u.Price != nil {
		set("price", *u.Price)
	}
	if u.Currency != nil {
		set("currency", *u.Currency)
	}
	if u.Category != nil {
		set("category", *u.Category)
	}
	if u.Color != nil {
		set("color", *u.Color)
	}
	if u.BillingCycle != nil {
		set("billing_cycle", *u.BillingCycle)
	}
	if u.NextBillingDate != nil {
		set("next_billing_date", emptyToNil(u.NextBillingDate))
	}
	if u.IsPrivate != nil {
		set("is_private", *u.IsPrivate)
	}
	if len(sets) == 0 {
		return errors.BadRequest("No fields to update")
	}

	args = append(args, id, userID)
	query := `UPDATE subscriptions SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`

	res, err := db.Conn(ctx, r.db).Run(ctx, query, args...)
	if err != nil {
		return errors.DatabaseError("Failed to update subscription", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// Delete removes a subscription and its dependent rows. Callers run it in a
// transaction.
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id int64) error {
	q := db.Conn(ctx, r.db)

	owned := `SELECT id FROM subscriptions WHERE id = ? AND user_id = ?`
	if _, err := q.Run(ctx, `DELETE FROM usage_logs WHERE subscription_id IN (`+owned+`)`, id, userID); err != nil {
		return errors.DatabaseError("Failed to delete usage logs", err)
	}
	if _, err := q.Run(ctx, `DELETE FROM price_history WHERE subscription_id IN (`+owned+`)`, id, userID); err != nil {
		return errors.DatabaseError("Failed to delete price history", err)
	}

	res, err := q.Run(ctx, `DELETE FROM subscriptions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete subscription", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// TouchLastUsed sets last_used in a single statement
func (r *SubscriptionRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time, monotonic bool) error {
	q := db.Conn(ctx, r.db)

	var (
		res db.Result
		err error
	)
	if monotonic {
		query := `UPDATE subscriptions SET last_used = ` +
			q.Dialect().Greatest("COALESCE(last_used, ?)", "?") + ` WHERE id = ?`
		res, err = q.Run(ctx, query, at, at, id)
	} else {
		res, err = q.Run(ctx, `UPDATE subscriptions SET last_used = ? WHERE id = ?`, at, id)
	}
	if err != nil {
		return errors.DatabaseError("Failed to update last used", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// AddUsage appends a usage log
func (r *SubscriptionRepository) AddUsage(ctx context.Context, l *subscription.UsageLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	res, err := db.Conn(ctx, r.db).Run(ctx,
		`INSERT INTO usage_logs (subscription_id, used_at, created_at) VALUES (?, ?, ?) RETURNING id`,
		l.SubscriptionID, l.UsedAt, l.CreatedAt)
	if err != nil {
		return errors.DatabaseError("Failed to log usage", err)
	}

	id, err := insertedID(res, "usage log")
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

// CountUsage counts a subscription's usage logs
func (r *SubscriptionRepository) CountUsage(ctx context.Context, id int64) (int, error) {
	var n int
	err := db.Conn(ctx, r.db).Get(ctx, `SELECT COUNT(*) FROM usage_logs WHERE subscription_id = ?`, scanCount(&n), id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count usage", err)
	}
	return n, nil
}

// DailyUsage counts usage per calendar day within the window, newest day first
func (r *SubscriptionRepository) DailyUsage(ctx context.Context, id int64, ref time.Time, days int) ([]subscription.DailyUsage, error) {
	q := db.Conn(ctx, r.db)
	d := q.Dialect()
	day := d.DateOf("used_at")

	query := `
		SELECT ` + day + ` AS usage_date, COUNT(*)
		FROM usage_logs
		WHERE subscription_id = ? AND ` + d.WithinDays("used_at", days, true) + `
		GROUP BY ` + day + `
		ORDER BY usage_date DESC
	`

	usage := []subscription.DailyUsage{}
	err := q.All(ctx, query, func(s db.Scanner) error {
		var u subscription.DailyUsage
		if err := s.Scan(&u.Date, &u.Count); err != nil {
			return err
		}
		usage = append(usage, u)
		return nil
	}, id, ref)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get usage statistics", err)
	}
	return usage, nil
}

// AddPriceChange appends a price history row
func (r *SubscriptionRepository) AddPriceChange(ctx context.Context, c *subscription.PriceChange) error {
	if c.ChangeDate.IsZero() {
		c.ChangeDate = time.Now().UTC()
	}

	res, err := db.Conn(ctx, r.db).Run(ctx,
		`INSERT INTO price_history (subscription_id, old_price, new_price, change_date) VALUES (?, ?, ?, ?) RETURNING id`,
		c.SubscriptionID, c.OldPrice, c.NewPrice, c.ChangeDate)
	if err != nil {
		return errors.DatabaseError("Failed to record price change", err)
	}

	id, err := insertedID(res, "price history")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// PriceHistory lists price changes, newest first
func (r *SubscriptionRepository) PriceHistory(ctx context.Context, id int64) ([]*subscription.PriceChange, error) {
	query := `
		SELECT id, subscription_id, old_price, new_price, change_date
		FROM price_history
		WHERE subscription_id = ?
		ORDER BY change_date DESC, id DESC
	`

	history := []*subscription.PriceChange{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var c subscription.PriceChange
		var changed db.NullTime
		if err := s.Scan(&c.ID, &c.SubscriptionID, &c.OldPrice, &c.NewPrice, &changed); err != nil {
			return err
		}
		c.ChangeDate = changed.Time
		history = append(history, &c)
		return nil
	}, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get price history", err)
	}
	return history, nil
}

func underusedFilter(d db.Dialect, days int) string {
	return `(last_used IS NULL OR ` + d.OlderThanDays("last_used", days, true) + `)`
}

// ListUnderused lists subscriptions unused for more than days before ref
func (r *SubscriptionRepository) ListUnderused(ctx context.Context, userID int64, ref time.Time, days int) ([]*subscription.Subscription, error) {
	q := db.Conn(ctx, r.db)
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE user_id = ? AND ` + underusedFilter(q.Dialect(), days) + `
		ORDER BY price DESC, id`

	subs := []*subscription.Subscription{}
	if err := q.All(ctx, query, collectSubscriptions(&subs), userID, ref); err != nil {
		return nil, errors.DatabaseError("Failed to list underused subscriptions", err)
	}
	return subs, nil
}

// CountUnderused counts underused subscriptions
func (r *SubscriptionRepository) CountUnderused(ctx context.Context, userID int64, ref time.Time, days int) (int, error) {
	q := db.Conn(ctx, r.db)
	query := `SELECT COUNT(*) FROM subscriptions WHERE user_id = ? AND ` + underusedFilter(q.Dialect(), days)

	var n int
	if err := q.Get(ctx, query, scanCount(&n), userID, ref); err != nil {
		return 0, errors.DatabaseError("Failed to count underused subscriptions", err)
	}
	return n, nil
}

// TotalsByCurrency sums prices per currency
func (r *SubscriptionRepository) TotalsByCurrency(ctx context.Context, userID int64) ([]subscription.CurrencyTotal, error) {
	query := `
		SELECT currency, COALESCE(SUM(price), 0), COUNT(*)
		FROM subscriptions
		WHERE user_id = ?
		GROUP BY currency
		ORDER BY currency
	`

	totals := []subscription.CurrencyTotal{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var t subscription.CurrencyTotal
		if err := s.Scan(&t.Currency, &t.Total, &t.Count); err != nil {
			return err
		}
		totals = append(totals, t)
		return nil
	}, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to total subscriptions", err)
	}
	return totals, nil
}

// TotalsByCategory sums prices per category and currency
func (r *SubscriptionRepository) TotalsByCategory(ctx context.Context, userID int64) ([]subscription.CategoryTotal, error) {
	query := `
		SELECT category, currency, COUNT(*), COALESCE(SUM(price), 0)
		FROM subscriptions
		WHERE user_id = ?
		GROUP BY category, currency
		ORDER BY category, currency
	`

	totals := []subscription.CategoryTotal{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var t subscription.CategoryTotal
		if err := s.Scan(&t.Category, &t.Currency, &t.Count, &t.Total); err != nil {
			return err
		}
		totals = append(totals, t)
		return nil
	}, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to total categories", err)
	}
	return totals, nil
}

// ListBillingBefore returns subscriptions of every user billed before date
func (r *SubscriptionRepository) ListBillingBefore(ctx context.Context, date string) ([]*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE next_billing_date IS NOT NULL AND next_billing_date < ?
		ORDER BY id`

	subs := []*subscription.Subscription{}
	if err := db.Conn(ctx, r.db).All(ctx, query, collectSubscriptions(&subs), date); err != nil {
		return nil, errors.DatabaseError("Failed to list due subscriptions", err)
	}
	return subs, nil
}

// SetNextBillingDate stores a new billing date
func (r *SubscriptionRepository) SetNextBillingDate(ctx context.Context, id int64, date string) error {
	res, err := db.Conn(ctx, r.db).Run(ctx, `UPDATE subscriptions SET next_billing_date = ? WHERE id = ?`, date, id)
	if err != nil {
		return errors.DatabaseError("Failed to update billing date", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}
