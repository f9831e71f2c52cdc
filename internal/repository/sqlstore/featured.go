package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/featured"
	"github.com/paycal/backend/internal/pkg/errors"
)

// FeaturedRepository implements featured.Repository
type FeaturedRepository struct {
	db db.DB
}

// NewFeaturedRepository creates a new weekly featured repository
func NewFeaturedRepository(d db.DB) featured.Repository {
	return &FeaturedRepository{db: d}
}

const featuredColumns = `id, service_name, description, category, price, currency, logo_url, cta_url,
	sponsor_name, week_start_date, week_end_date, is_active, impression_payment,
	total_impressions, click_count, created_at`

func scanFeatured(f *featured.WeeklyFeatured) db.ScanFunc {
	return func(s db.Scanner) error {
		var (
			description, category, logo, cta, sponsor sql.NullString
			price                                     sql.NullFloat64
			start, end, created                       db.NullTime
		)
		err := s.Scan(&f.ID, &f.ServiceName, &description, &category, &price, &f.Currency, &logo, &cta,
			&sponsor, &start, &end, &f.IsActive, &f.ImpressionPayment,
			&f.TotalImpressions, &f.ClickCount, &created)
		if err != nil {
			return err
		}
		f.Description = stringPtr(description)
		f.Category = stringPtr(category)
		f.Price = floatPtr(price)
		f.LogoURL = stringPtr(logo)
		f.CTAURL = stringPtr(cta)
		f.SponsorName = stringPtr(sponsor)
		f.WeekStartDate = start.Time.Format(db.DateLayout)
		f.WeekEndDate = end.Time.Format(db.DateLayout)
		f.CreatedAt = created.Time
		return nil
	}
}

// Create inserts a featured entry
func (r *FeaturedRepository) Create(ctx context.Context, f *featured.WeeklyFeatured) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if f.Currency == "" {
		f.Currency = "₺"
	}

	query := `
		INSERT INTO weekly_featured (service_name, description, category, price, currency, logo_url, cta_url,
			sponsor_name, week_start_date, week_end_date, is_active, impression_payment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	res, err := db.Conn(ctx, r.db).Run(ctx, query,
		f.ServiceName, f.Description, f.Category, f.Price, f.Currency, f.LogoURL, f.CTAURL,
		f.SponsorName, f.WeekStartDate, f.WeekEndDate, f.IsActive, f.ImpressionPayment, f.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create featured entry", err)
	}

	id, err := insertedID(res, "featured entry")
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// GetByID retrieves a featured entry
func (r *FeaturedRepository) GetByID(ctx context.Context, id int64) (*featured.WeeklyFeatured, error) {
	var f featured.WeeklyFeatured
	err := db.Conn(ctx, r.db).Get(ctx, `SELECT `+featuredColumns+` FROM weekly_featured WHERE id = ?`, scanFeatured(&f), id)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, errors.NotFound("Featured entry")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get featured entry", err)
	}
	return &f, nil
}

// ListActive returns active entries whose window contains date
func (r *FeaturedRepository) ListActive(ctx context.Context, date string, limit int) ([]*featured.WeeklyFeatured, error) {
	query := `SELECT ` + featuredColumns + ` FROM weekly_featured
		WHERE is_active = ? AND week_start_date <= ? AND week_end_date >= ?
		ORDER BY impression_payment DESC, id
		LIMIT ?`

	items := []*featured.WeeklyFeatured{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var f featured.WeeklyFeatured
		if err := scanFeatured(&f)(s); err != nil {
			return err
		}
		items = append(items, &f)
		return nil
	}, true, date, date, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list featured entries", err)
	}
	return items, nil
}

// RecordImpression logs one impression
func (r *FeaturedRepository) RecordImpression(ctx context.Context, featuredID, userID int64, at time.Time) (int64, error) {
	res, err := db.Conn(ctx, r.db).Run(ctx,
		`INSERT INTO featured_impressions (featured_id, user_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		featuredID, userID, at)
	if err != nil {
		return 0, errors.DatabaseError("Failed to record impression", err)
	}
	return insertedID(res, "impression")
}

func (r *FeaturedRepository) increment(ctx context.Context, column string, id int64) error {
	res, err := db.Conn(ctx, r.db).Run(ctx,
		`UPDATE weekly_featured SET `+column+` = `+column+` + 1 WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to update featured counter", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Featured entry")
	}
	return nil
}

// IncrementImpressions bumps total_impressions
func (r *FeaturedRepository) IncrementImpressions(ctx context.Context, id int64) error {
	return r.increment(ctx, "total_impressions", id)
}

// IncrementClicks bumps click_count
func (r *FeaturedRepository) IncrementClicks(ctx context.Context, id int64) error {
	return r.increment(ctx, "click_count", id)
}
