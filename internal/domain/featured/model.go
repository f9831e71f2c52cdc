package featured

import "time"

// WeeklyFeatured is a sponsored entry shown during a date window
type WeeklyFeatured struct {
	ID                int64     `json:"id"`
	ServiceName       string    `json:"service_name"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category"`
	Price             *float64  `json:"price"`
	Currency          string    `json:"currency"`
	LogoURL           *string   `json:"logo_url"`
	CTAURL            *string   `json:"cta_url"`
	SponsorName       *string   `json:"sponsor_name"`
	WeekStartDate     string    `json:"week_start_date"`
	WeekEndDate       string    `json:"week_end_date"`
	IsActive          bool      `json:"is_active"`
	ImpressionPayment float64   `json:"impression_payment"`
	TotalImpressions  int       `json:"total_impressions"`
	ClickCount        int       `json:"click_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// ActiveLimit caps how many entries are shown at once
const ActiveLimit = 3

// Events counted per entry
const (
	EventImpression = "impression"
	EventClick      = "click"
)
