package consent

import "time"

// Consent is a user's stored analytics consent
type Consent struct {
	UserID           int64     `json:"user_id"`
	AnalyticsConsent bool      `json:"analytics_consent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Status tells clients whether to show the consent prompt
type Status struct {
	HasConsented     bool `json:"has_consented"`
	AnalyticsConsent bool `json:"analytics_consent"`
}

// Section is one part of the privacy policy
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Policy is the privacy policy document
type Policy struct {
	Title       string    `json:"title"`
	LastUpdated string    `json:"last_updated"`
	Sections    []Section `json:"sections"`
}

// PrivacyPolicy returns the current policy text
func PrivacyPolicy() Policy {
	return Policy{
		Title:       "Gizlilik Politikası",
		LastUpdated: "26 Aralık 2025",
		Sections: []Section{
			{
				Title:   "1. Veri Toplama",
				Content: "Paycal, abonelik takibi ve istatistiksel analiz için minimal veri toplar.",
			},
			{
				Title:   "2. Verilerin Kullanımı",
				Content: "Abonelik bilgileriniz yalnızca size harcama özetleri ve öneriler sunmak için kullanılır.",
			},
			{
				Title:   "3. Paylaşım",
				Content: "Gizli olarak işaretlediğiniz abonelikler arkadaş akışında gösterilmez. Verileriniz üçüncü taraflara satılmaz.",
			},
			{
				Title:   "4. Haklarınız",
				Content: "Analitik iznini istediğiniz zaman ayarlardan geri çekebilirsiniz.",
			},
		},
	}
}
