package analytics

import (
	"math"
	"strconv"

	"github.com/paycal/backend/internal/domain/subscription"
)

// Windows used by the analytics endpoints, in days
const (
	UnderusedDays   = 30
	UsageWindowDays = 30
)

// RateProvider converts prices to lira
type RateProvider interface {
	ToLira(amount float64, currency string) float64
}

// FixedRates converts at configured constant rates. Live market data is
// out of scope.
type FixedRates struct {
	USD float64
	EUR float64
}

// ToLira converts amount; unknown currencies are taken as lira
func (r FixedRates) ToLira(amount float64, currency string) float64 {
	switch currency {
	case subscription.CurrencyUSD:
		return amount * r.USD
	case subscription.CurrencyEUR:
		return amount * r.EUR
	default:
		return amount
	}
}

// Normalize sums per-currency totals into lira
func Normalize(rates RateProvider, totals []subscription.CurrencyTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += rates.ToLira(t.Total, t.Currency)
	}
	return sum
}

// Round rounds v half away from zero to the given number of decimals
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// FormatAmount renders an amount with exactly two decimals
func FormatAmount(v float64) string {
	return strconv.FormatFloat(Round(v, 2), 'f', 2, 64)
}

// Percentage returns part's integer share of whole; zero when whole is zero
func Percentage(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// Summary is the dashboard headline
type Summary struct {
	TotalMonthly       string `json:"totalMonthly"`
	TotalSubscriptions int    `json:"totalSubscriptions"`
	UnderusedCount     int    `json:"underusedCount"`
}

// CategoryBreakdown is one category's share of spend, in lira
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	Percentage int     `json:"percentage"`
}

// UsageTotals summarises the usage window
type UsageTotals struct {
	TotalUsage int     `json:"totalUsage"`
	DaysActive int     `json:"daysActive"`
	AvgPerDay  float64 `json:"avgPerDay"`
}

// UsageStats is the per-subscription usage report
type UsageStats struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Usage        []subscription.DailyUsage  `json:"usage"`
	Stats        UsageTotals                `json:"stats"`
}

// TotalsFromDaily derives window totals from per-day counts
func TotalsFromDaily(days []subscription.DailyUsage, window int) UsageTotals {
	var t UsageTotals
	for _, d := range days {
		t.TotalUsage += d.Count
	}
	t.DaysActive = len(days)
	if window > 0 {
		t.AvgPerDay = Round(float64(t.TotalUsage)/float64(window), 1)
	}
	return t
}
