package recommendation

import "time"

// Profile describes who a user is, for community recommendations
type Profile struct {
	UserID     int64     `json:"user_id"`
	Occupation *string   `json:"occupation"`
	IsStudent  bool      `json:"is_student"`
	Interests  *string   `json:"interests"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommunityItem is a subscription popular in the caller's group
type CommunityItem struct {
	SubscriptionName string  `json:"subscription_name"`
	Category         string  `json:"category"`
	Currency         string  `json:"currency"`
	UserCount        int     `json:"user_count"`
	AvgPrice         float64 `json:"avg_price"`
}

// Community is the recommendation list with the group it was drawn from
type Community struct {
	Recommendations []*CommunityItem `json:"recommendations"`
	TargetGroup     *string          `json:"target_group,omitempty"`
}

// CommunityLimit caps the community list
const CommunityLimit = 10

// StudentGroup labels recommendations drawn from students
const StudentGroup = "Öğrenciler"

// TargetGroup names the group a profile is matched against
func (p *Profile) TargetGroup() *string {
	if p.IsStudent {
		g := StudentGroup
		return &g
	}
	return p.Occupation
}

// Occupation is one entry of the occupation picker
type Occupation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Occupations returns the static occupation list
func Occupations() []Occupation {
	return []Occupation{
		{ID: "student", Name: "Öğrenci", Icon: "🎓"},
		{ID: "developer", Name: "Yazılım Geliştirici", Icon: "💻"},
		{ID: "designer", Name: "Grafik Tasarımcı", Icon: "🎨"},
		{ID: "marketer", Name: "Pazarlamacı", Icon: "📊"},
		{ID: "other", Name: "Diğer", Icon: "👤"},
	}
}
