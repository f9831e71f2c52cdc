package premium

import (
	"strconv"
	"time"
)

// State is derived at read time from the stored flag and expiry
type State string

// Premium states
const (
	StateFree    State = "free"
	StateActive  State = "premium-active"
	StateExpired State = "premium-expired"
)

// StateOf derives the premium state at now
func StateOf(isPremium bool, expiresAt *time.Time, now time.Time) State {
	switch {
	case !isPremium:
		return StateFree
	case expiresAt == nil || expiresAt.After(now):
		return StateActive
	default:
		return StateExpired
	}
}

// Status is the premium view returned to clients
type Status struct {
	IsPremium bool       `json:"is_premium"`
	State     State      `json:"state"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Plan is a purchasable premium plan
type Plan string

// Plans
const (
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

// ParsePlan validates a plan name
func ParsePlan(s string) (Plan, bool) {
	switch Plan(s) {
	case PlanMonthly, PlanYearly:
		return Plan(s), true
	}
	return "", false
}

// Price is the plan price in lira
func (p Plan) Price() float64 {
	if p == PlanYearly {
		return 199
	}
	return 20
}

// SubscriptionName is the name of the subscription synthesised on purchase
func (p Plan) SubscriptionName() string {
	if p == PlanYearly {
		return "Paycal Premium (Yıllık)"
	}
	return "Paycal Premium (Aylık)"
}

// ExpiresAt returns when a plan bought at start runs out
func (p Plan) ExpiresAt(start time.Time) time.Time {
	if p == PlanYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// Synthesised subscription attributes
const (
	SubscriptionCategory = "Uygulama"
	SubscriptionColor    = "bg-yellow-500"
)

// Purchase records a premium purchase
type Purchase struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Plan      Plan      `json:"plan_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// PurchaseStatusActive marks a live purchase
const PurchaseStatusActive = "active"

// Activation is the result of a purchase
type Activation struct {
	Plan              Plan      `json:"plan"`
	ExpiresAt         time.Time `json:"expires_at"`
	SubscriptionAdded bool      `json:"subscription_added"`
	SubscriptionID    int64     `json:"subscription_id"`
}

// Feature is one line of a plan description
type Feature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// PlanInfo describes a plan in the catalogue
type PlanInfo struct {
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency,omitempty"`
	Period   string    `json:"period,omitempty"`
	Discount string    `json:"discount,omitempty"`
	Features []Feature `json:"features"`
}

// Catalogue is the static plan list
type Catalogue struct {
	Free           PlanInfo `json:"free"`
	PremiumMonthly PlanInfo `json:"premium_monthly"`
	PremiumYearly  PlanInfo `json:"premium_yearly"`
}

// Features returns the plan catalogue for a given free-tier limit
func Features(freeLimit int) Catalogue {
	return Catalogue{
		Free: PlanInfo{
			Name:  "Ücretsiz",
			Price: 0,
			Features: []Feature{
				{Text: strconv.Itoa(freeLimit) + " abonelik takibi", Included: true},
				{Text: "Temel istatistikler", Included: true},
				{Text: "Takvim görünümü", Included: true},
				{Text: "Arkadaş ekleme", Included: true},
				{Text: "Sınırsız abonelik", Included: false},
				{Text: "Fiyat artışı bildirimleri", Included: false},
				{Text: "Gelişmiş analitik", Included: false},
				{Text: "Bütçe yönetimi", Included: false},
				{Text: "Reklamsız deneyim", Included: false},
			},
		},
		PremiumMonthly: PlanInfo{
			Name:     "Premium Aylık",
			Price:    PlanMonthly.Price(),
			Currency: "₺",
			Period:   "ay",
			Features: []Feature{
				{Text: "Sınırsız abonelik takibi", Included: true},
				{Text: "Fiyat artışı bildirimleri", Included: true},
				{Text: "Gelişmiş analitik & raporlar", Included: true},
				{Text: "Bütçe yönetimi", Included: true},
				{Text: "Kategori bazlı öngörüler", Included: true},
				{Text: "Reklamsız deneyim", Included: true},
				{Text: "Öncelikli destek", Included: true},
			},
		},
		PremiumYearly: PlanInfo{
			Name:     "Premium Yıllık",
			Price:    PlanYearly.Price(),
			Currency: "₺",
			Period:   "yıl",
			Discount: "2 ay bedava!",
			Features: []Feature{
				{Text: "Tüm Premium özellikler", Included: true},
				{Text: "%17 indirim (2 ay bedava)", Included: true},
				{Text: "Yıllık ödeme kolaylığı", Included: true},
			},
		},
	}
}
