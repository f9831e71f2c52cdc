package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			FrontendURL:    "http://localhost:5173",
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			// Tokens are minted at the fixed test clock but verified against
			// wall time.
			TokenExpiry: 100 * 365 * 24 * time.Hour,
			BCryptCost:  4,
		},
		Rates:  config.RatesConfig{USD: 34, EUR: 37},
		Limits: config.LimitsConfig{FreeSubscriptions: 5},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type apiClient struct {
	t   *testing.T
	url string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	srv := httptest.NewServer(Handler(testConfig(), testutil.NewTestDB(t), testutil.NewClock(), logger.Nop()))
	t.Cleanup(srv.Close)
	return &apiClient{t: t, url: srv.URL}
}

func (c *apiClient) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.url+path, &buf)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// ok runs a request, requires the status and decodes data into out
func (c *apiClient) ok(status int, method, path, token string, body, out interface{}) {
	c.t.Helper()

	got, env := c.do(method, path, token, body)
	require.Equal(c.t, status, got, "%s %s: %s", method, path, env.Error.Message)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
}

type account struct {
	Token string `json:"token"`
	User  struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		IsPremium bool   `json:"is_premium"`
	} `json:"user"`
}

func (c *apiClient) register(email, name string) account {
	c.t.Helper()

	var a account
	c.ok(http.StatusCreated, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "secret1", "name": name}, &a)
	require.NotEmpty(c.t, a.Token)
	return a
}

type sub struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	a := api.register("Ayse@Example.com", "Ayşe")
	assert.Equal(t, "ayse@example.com", a.User.Email)

	status, env := api.do(http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "ayse@example.com", "password": "secret1", "name": "Again"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, _ = api.do(http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ayse@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	var logged account
	api.ok(http.StatusOK, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "AYSE@example.com", "password": "secret1"}, &logged)
	assert.Equal(t, a.User.ID, logged.User.ID)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"invalid token", "not-a-jwt", http.StatusForbidden},
		{"valid token", a.Token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := api.do(http.MethodGet, "/api/auth/me", tt.token, nil)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "not-an-email", "password": "123", "name": "A"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSubscriptionsAndAnalytics(t *testing.T) {
	api := newAPI(t)
	tok := api.register("ayse@example.com", "Ayşe").Token

	var netflix, spotify sub
	api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", tok,
		map[string]interface{}{"name": "Netflix", "price": 349.99, "category": "Eğlence"}, &netflix)
	api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", tok,
		map[string]interface{}{"name": "Spotify", "price": 10, "currency": "$", "category": "Müzik",
			"last_used": testutil.Epoch.AddDate(0, 0, -60)}, &spotify)
	assert.Equal(t, "₺", netflix.Currency)

	status, env := api.do(http.MethodPost, "/api/subscriptions", tok,
		map[string]interface{}{"name": "Free", "price": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	var list []sub
	api.ok(http.StatusOK, http.MethodGet, "/api/subscriptions", tok, nil, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Spotify", list[0].Name)

	var summary struct {
		TotalMonthly       string `json:"totalMonthly"`
		TotalSubscriptions int    `json:"totalSubscriptions"`
		UnderusedCount     int    `json:"underusedCount"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/analytics/summary", tok, nil, &summary)
	assert.Equal(t, "689.99", summary.TotalMonthly)
	assert.Equal(t, 2, summary.TotalSubscriptions)
	assert.Equal(t, 1, summary.UnderusedCount)

	var updated sub
	api.ok(http.StatusOK, http.MethodPut, fmt.Sprintf("/api/subscriptions/%d", netflix.ID), tok,
		map[string]interface{}{"price": 399.99}, &updated)
	assert.Equal(t, 399.99, updated.Price)

	var history []struct {
		OldPrice float64 `json:"old_price"`
		NewPrice float64 `json:"new_price"`
	}
	api.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/api/analytics/price-history/%d", netflix.ID), tok, nil, &history)
	require.Len(t, history, 1)
	assert.Equal(t, 349.99, history[0].OldPrice)

	api.ok(http.StatusOK, http.MethodPost, fmt.Sprintf("/api/subscriptions/%d/usage", netflix.ID), tok, nil, nil)

	var usage struct {
		Stats struct {
			TotalUsage int `json:"totalUsage"`
		} `json:"stats"`
	}
	api.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/api/analytics/usage/%d", netflix.ID), tok, nil, &usage)
	assert.Equal(t, 1, usage.Stats.TotalUsage)

	var underused []sub
	api.ok(http.StatusOK, http.MethodGet, "/api/analytics/underused", tok, nil, &underused)
	require.Len(t, underused, 1)
	assert.Equal(t, "Spotify", underused[0].Name)

	var categories []struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/analytics/categories", tok, nil, &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "Eğlence", categories[0].Category)

	api.ok(http.StatusOK, http.MethodDelete, fmt.Sprintf("/api/subscriptions/%d", netflix.ID), tok, nil, nil)
	status, _ = api.do(http.MethodGet, fmt.Sprintf("/api/subscriptions/%d", netflix.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodGet, "/api/subscriptions/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSubscriptionsAreScopedToOwner(t *testing.T) {
	api := newAPI(t)
	ayse := api.register("ayse@example.com", "Ayşe").Token
	mehmet := api.register("mehmet@example.com", "Mehmet").Token

	var s sub
	api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", ayse,
		map[string]interface{}{"name": "Netflix", "price": 99.99}, &s)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		status, _ := api.do(method, fmt.Sprintf("/api/subscriptions/%d", s.ID), mehmet, nil)
		assert.Equal(t, http.StatusNotFound, status, method)
	}
}

func TestFreeLimitAndPremium(t *testing.T) {
	api := newAPI(t)
	tok := api.register("ayse@example.com", "Ayşe").Token

	for i := 0; i < 5; i++ {
		api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", tok,
			map[string]interface{}{"name": fmt.Sprintf("Sub %d", i), "price": 10}, nil)
	}

	status, env := api.do(http.MethodPost, "/api/subscriptions", tok,
		map[string]interface{}{"name": "Sixth", "price": 10})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "LIMIT_EXCEEDED", env.Error.Code)
	var details struct {
		UpgradeRequired bool `json:"upgrade_required"`
		Limit           int  `json:"limit"`
		Current         int  `json:"current"`
	}
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, 5, details.Limit)
	assert.Equal(t, 5, details.Current)
	assert.True(t, details.UpgradeRequired)

	status, _ = api.do(http.MethodPost, "/api/premium/subscribe", tok, map[string]string{"plan": "weekly"})
	assert.Equal(t, http.StatusBadRequest, status)

	api.ok(http.StatusOK, http.MethodPost, "/api/premium/subscribe", tok, map[string]string{"plan": "monthly"}, nil)

	var st struct {
		IsPremium bool   `json:"is_premium"`
		State     string `json:"state"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/premium/status", tok, nil, &st)
	assert.True(t, st.IsPremium)
	assert.Equal(t, "premium-active", st.State)

	api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", tok,
		map[string]interface{}{"name": "Sixth", "price": 10}, nil)

	var list []sub
	api.ok(http.StatusOK, http.MethodGet, "/api/subscriptions", tok, nil, &list)
	assert.Len(t, list, 7)

	api.ok(http.StatusOK, http.MethodPost, "/api/premium/cancel", tok, nil, nil)
	api.ok(http.StatusOK, http.MethodGet, "/api/premium/status", tok, nil, &st)
	assert.False(t, st.IsPremium)
	assert.Equal(t, "free", st.State)
}

func TestSocialFlow(t *testing.T) {
	api := newAPI(t)
	ayse := api.register("ayse@example.com", "Ayşe")
	mehmet := api.register("mehmet@example.com", "Mehmet")

	api.ok(http.StatusCreated, http.MethodPost, "/api/subscriptions", mehmet.Token,
		map[string]interface{}{"name": "Netflix", "price": 149.99, "category": "Eğlence"}, nil)

	var found []struct {
		ID int64 `json:"id"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/friends/search?query=meh", ayse.Token, nil, &found)
	require.Len(t, found, 1)
	assert.Equal(t, mehmet.User.ID, found[0].ID)

	// A private profile is hidden from strangers.
	api.ok(http.StatusOK, http.MethodPut, "/api/profile/settings/privacy", mehmet.Token,
		map[string]bool{"profile_public": false}, nil)
	status, _ := api.do(http.MethodGet, fmt.Sprintf("/api/profile/%d", mehmet.User.ID), ayse.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPost, "/api/friends/request", ayse.Token,
		map[string]int64{"to_user_id": ayse.User.ID})
	assert.Equal(t, http.StatusBadRequest, status)

	var created struct {
		RequestID int64 `json:"request_id"`
	}
	api.ok(http.StatusCreated, http.MethodPost, "/api/friends/request", ayse.Token,
		map[string]int64{"to_user_id": mehmet.User.ID}, &created)

	status, _ = api.do(http.MethodPost, "/api/friends/request", ayse.Token,
		map[string]int64{"to_user_id": mehmet.User.ID})
	assert.Equal(t, http.StatusBadRequest, status)

	var incoming []json.RawMessage
	api.ok(http.StatusOK, http.MethodGet, "/api/friends/requests/incoming", mehmet.Token, nil, &incoming)
	assert.Len(t, incoming, 1)

	api.ok(http.StatusOK, http.MethodPost, fmt.Sprintf("/api/friends/request/%d/accept", created.RequestID), mehmet.Token, nil, nil)

	var friends []json.RawMessage
	api.ok(http.StatusOK, http.MethodGet, "/api/friends/list", ayse.Token, nil, &friends)
	assert.Len(t, friends, 1)

	api.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/api/profile/%d", mehmet.User.ID), ayse.Token, nil, nil)

	var feed []json.RawMessage
	api.ok(http.StatusOK, http.MethodGet, "/api/discover/feed?limit=10", ayse.Token, nil, &feed)
	assert.Len(t, feed, 1)

	var activity []json.RawMessage
	api.ok(http.StatusOK, http.MethodGet, fmt.Sprintf("/api/discover/friend/%d", mehmet.User.ID), ayse.Token, nil, &activity)
	assert.Len(t, activity, 1)

	api.ok(http.StatusOK, http.MethodDelete, fmt.Sprintf("/api/friends/%d", mehmet.User.ID), ayse.Token, nil, nil)
	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/friends/%d", mehmet.User.ID), ayse.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodGet, fmt.Sprintf("/api/discover/friend/%d", mehmet.User.ID), ayse.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestInviteFlow(t *testing.T) {
	api := newAPI(t)
	ayse := api.register("ayse@example.com", "Ayşe")
	mehmet := api.register("mehmet@example.com", "Mehmet")

	var inv struct {
		Token string `json:"invite_token"`
		Link  string `json:"invite_link"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/invite/token", ayse.Token, nil, &inv)
	require.Len(t, inv.Token, 32)
	assert.Equal(t, "paycal://invite/"+inv.Token, inv.Link)

	status, _ := api.do(http.MethodGet, "/api/invite/user/"+inv.Token, ayse.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = api.do(http.MethodGet, "/api/invite/user/unknown", mehmet.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	api.ok(http.StatusCreated, http.MethodPost, "/api/invite/accept/"+inv.Token, mehmet.Token, nil, nil)

	var inviter struct {
		IsFriend          bool `json:"is_friend"`
		HasPendingRequest bool `json:"has_pending_request"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/invite/user/"+inv.Token, mehmet.Token, nil, &inviter)
	assert.False(t, inviter.IsFriend)
	assert.True(t, inviter.HasPendingRequest)
}

func TestConsentAndRecommendations(t *testing.T) {
	api := newAPI(t)
	tok := api.register("ayse@example.com", "Ayşe").Token

	status, _ := api.do(http.MethodPost, "/api/consent/save", tok, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)

	api.ok(http.StatusOK, http.MethodPost, "/api/consent/save", tok, map[string]bool{"analytics_consent": true}, nil)
	var consent struct {
		HasConsented     bool `json:"has_consented"`
		AnalyticsConsent bool `json:"analytics_consent"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/consent/status", tok, nil, &consent)
	assert.True(t, consent.HasConsented)
	assert.True(t, consent.AnalyticsConsent)

	api.ok(http.StatusOK, http.MethodPost, "/api/recommendations/profile", tok,
		map[string]interface{}{"occupation": "developer", "is_student": false}, nil)
	var profile struct {
		Occupation *string `json:"occupation"`
	}
	api.ok(http.StatusOK, http.MethodGet, "/api/recommendations/profile", tok, nil, &profile)
	require.NotNil(t, profile.Occupation)
	assert.Equal(t, "developer", *profile.Occupation)

	api.ok(http.StatusOK, http.MethodGet, "/api/recommendations/community", tok, nil, nil)
}

func TestPublicEndpoints(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		path string
	}{
		{"health", "/api/health"},
		{"liveness", "/healthz"},
		{"readiness", "/readyz"},
		{"privacy policy", "/api/consent/privacy-policy"},
		{"occupations", "/api/recommendations/occupations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := api.do(http.MethodGet, tt.path, "", nil)
			assert.Equal(t, http.StatusOK, status)
			assert.True(t, env.Success)
		})
	}
}

func TestMetricsAndHeaders(t *testing.T) {
	srv := httptest.NewServer(Handler(testConfig(), testutil.NewTestDB(t), testutil.NewClock(), logger.Nop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
