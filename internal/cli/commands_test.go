package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/app"
	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/testutil"
)

type cliHarness struct {
	t      *testing.T
	server string
	config string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{RateLimitRPS: 1000, RateLimitBurst: 1000},
		Auth: config.AuthConfig{
			JWTSecret:   "cli-test-secret",
			TokenExpiry: 100 * 365 * 24 * time.Hour,
			BCryptCost:  4,
		},
		Rates:  config.RatesConfig{USD: 34, EUR: 37},
		Limits: config.LimitsConfig{FreeSubscriptions: 1},
	}
	srv := httptest.NewServer(app.Handler(cfg, testutil.NewTestDB(t), testutil.NewClock(), logger.Nop()))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		viper.Reset()
		cfgFile, serverURL, outputFormat = "", "", "table"
	})

	return &cliHarness{
		t:      t,
		server: srv.URL,
		config: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

// run executes one command line against the test server.
func (h *cliHarness) run(args ...string) (string, error) {
	h.t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", h.config, "--server", h.server, "-o", "table"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("subs", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")

	out := h.mustRun("status")
	assert.Contains(t, out, "not logged in")
}

func TestSubscriptionWorkflow(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("auth", "register", "--email", "cli@example.com", "--password", "secret1", "--name", "Cli")
	assert.Contains(t, out, "cli@example.com")

	out = h.mustRun("status")
	assert.Contains(t, out, "Session:  cli@example.com")

	out = h.mustRun("subs", "list")
	assert.Contains(t, out, "No subscriptions yet")

	out = h.mustRun("subs", "add", "Netflix", "349.99", "--category", "Eğlence")
	assert.Contains(t, out, "Added Netflix (349.99₺)")

	out = h.mustRun("subs", "list")
	assert.Contains(t, out, "Netflix")
	assert.Contains(t, out, "349.99₺")

	_, err := h.run("subs", "add", "Spotify", "59.99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free plan limit of 1")

	_, err = h.run("subs", "add", "Spotify", "cheap")
	require.Error(t, err)

	out = h.mustRun("analytics", "summary")
	assert.Contains(t, out, "349.99₺")

	out = h.mustRun("subs", "list", "-o", "json")
	var subs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &subs))
	require.Len(t, subs, 1)
	id := strconv.FormatInt(int64(subs[0]["id"].(float64)), 10)

	out = h.mustRun("subs", "use", id)
	assert.Contains(t, out, "Usage logged")

	out = h.mustRun("premium", "subscribe", "yearly")
	assert.Contains(t, out, "Premium yearly active")

	out = h.mustRun("premium", "status")
	assert.Contains(t, out, "[+] premium-active")

	_, err = h.run("premium", "subscribe", "weekly")
	require.Error(t, err)

	out = h.mustRun("subs", "rm", id)
	assert.Contains(t, out, "Removed subscription "+id)
	_, err = h.run("subs", "rm", "x")
	require.Error(t, err)

	out = h.mustRun("auth", "logout")
	_, err = h.run("subs", "list")
	require.Error(t, err, out)
}
