package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/auth"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

func TestRequireAuth_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/catalog/goes18", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Not authenticated" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/catalog/goes18", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Invalid token" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "carol", "pw")

	expired, err := auth.GenerateToken("carol", []byte(env.cfg.SecretKey), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/catalog/goes18", expired, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Token expired" {
		t.Fatalf("expected expired-token detail, got %q", got)
	}
}

func seedEntries(env *testEnv, username string, n int, ts time.Time) {
	for i := 0; i < n; i++ {
		env.logs.entries = append(env.logs.entries, accesslog.Entry{
			Timestamp: ts,
			Username:  username,
			Endpoint:  "/catalog/goes18",
			Status:    200,
		})
	}
}

func TestGated_FreeUserDeniedAtQuota(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.products = []string{"ABI-L1b-RadC"}
	token := env.registerAndLogin(t, "dave", "pw")

	seedEntries(env, "dave", 10, env.clock.Now())

	rec := env.do(t, http.MethodGet, "/catalog/goes18", token, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", rec.Code, rec.Body.String())
	}

	// The denial itself must be logged, with its terminal status.
	last := env.logs.entries[len(env.logs.entries)-1]
	if last.Username != "dave" || last.Status != http.StatusTooManyRequests {
		t.Fatalf("denial not logged correctly: %+v", last)
	}
	if last.Endpoint != "/catalog/goes18" {
		t.Fatalf("unexpected endpoint in log entry: %q", last.Endpoint)
	}
}

func TestGated_StaleEntriesDoNotCount(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.products = []string{"ABI-L1b-RadC"}
	token := env.registerAndLogin(t, "erin", "pw")

	seedEntries(env, "erin", 10, env.clock.Now())
	env.clock.Advance(2 * time.Hour)

	rec := env.do(t, http.MethodGet, "/catalog/goes18", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGated_AllowedRequestIsLogged(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.products = []string{"ABI-L1b-RadC"}
	token := env.registerAndLogin(t, "frank", "pw")

	rec := env.do(t, http.MethodGet, "/catalog/goes18", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(env.logs.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(env.logs.entries))
	}
	entry := env.logs.entries[0]
	if entry.Username != "frank" || entry.Endpoint != "/catalog/goes18" || entry.Status != 200 {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
}

func TestGated_PlatinumUnlimited(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.products = []string{"ABI-L1b-RadC"}
	token := env.registerAndLogin(t, "grace", "pw")
	env.users.users["grace"].Plan = users.PlanPlatinum

	seedEntries(env, "grace", 50, env.clock.Now())

	rec := env.do(t, http.MethodGet, "/catalog/goes18", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unlimited plan, got %d", rec.Code)
	}
}

func TestGated_AccountEndpointsNotGated(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "heidi", "pw")

	// Exhausted quota must not block the upgrade path.
	seedEntries(env, "heidi", 10, env.clock.Now())

	rec := env.do(t, http.MethodPost, "/user/upgrade-plan", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.users.users["heidi"].Plan != users.PlanGold {
		t.Fatalf("expected Gold after upgrade, got %v", env.users.users["heidi"].Plan)
	}
}
