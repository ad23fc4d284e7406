package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/dpatil-neu/skycatalog/internal/catalog"
	"github.com/dpatil-neu/skycatalog/internal/common"
	"github.com/dpatil-neu/skycatalog/internal/logging"
	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/config"
	"github.com/dpatil-neu/skycatalog/internal/server/quota"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

type fakeUsersRepo struct {
	users map[string]*users.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*users.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	if _, ok := f.users[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "id-" + u.Username
	u.CreatedAt = time.Now()
	f.users[u.Username] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	u, ok := f.users[username]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsersRepo) UpdatePlan(ctx context.Context, username string, plan users.Plan) error {
	u, ok := f.users[username]
	if !ok {
		return common.ErrorNotFound
	}
	u.Plan = plan
	return nil
}

type fakeLogsRepo struct {
	entries []accesslog.Entry
	nextID  int64
}

func (f *fakeLogsRepo) Append(ctx context.Context, e *accesslog.Entry) error {
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLogsRepo) CountSince(ctx context.Context, username string, since time.Time) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.Username == username && !e.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLogsRepo) ListByUser(ctx context.Context, username string, since time.Time) ([]accesslog.Entry, error) {
	var out []accesslog.Entry
	for _, e := range f.entries {
		if e.Username == username && !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLogsRepo) ListAll(ctx context.Context, since time.Time) ([]accesslog.Entry, error) {
	var out []accesslog.Entry
	for _, e := range f.entries {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeCatalogRepo keys the nested dimension maps by the slash-joined query
// path, e.g. years["ABI-L1b-RadC"], hours["ABI-L1b-RadC/2022/209"].
type fakeCatalogRepo struct {
	products    []string
	years       map[string][]string
	days        map[string][]string
	hours       map[string][]string
	nexYears    []string
	nexMonths   map[string][]string
	nexDays     map[string][]string
	nexStations map[string][]string
	stations    []catalog.Station
}

func (f *fakeCatalogRepo) ReplaceGoes(ctx context.Context, records []catalog.Record) error {
	return nil
}
func (f *fakeCatalogRepo) ReplaceNexrad(ctx context.Context, records []catalog.Record) error {
	return nil
}
func (f *fakeCatalogRepo) ReplaceStations(ctx context.Context, stations []catalog.Station) error {
	return nil
}

func (f *fakeCatalogRepo) GoesProducts(ctx context.Context) ([]string, error) {
	return f.products, nil
}
func (f *fakeCatalogRepo) GoesYears(ctx context.Context, product string) ([]string, error) {
	return f.years[product], nil
}
func (f *fakeCatalogRepo) GoesDays(ctx context.Context, product, year string) ([]string, error) {
	return f.days[product+"/"+year], nil
}
func (f *fakeCatalogRepo) GoesHours(ctx context.Context, product, year, day string) ([]string, error) {
	return f.hours[product+"/"+year+"/"+day], nil
}
func (f *fakeCatalogRepo) NexradYears(ctx context.Context) ([]string, error) {
	return f.nexYears, nil
}
func (f *fakeCatalogRepo) NexradMonths(ctx context.Context, year string) ([]string, error) {
	return f.nexMonths[year], nil
}
func (f *fakeCatalogRepo) NexradDays(ctx context.Context, year, month string) ([]string, error) {
	return f.nexDays[year+"/"+month], nil
}
func (f *fakeCatalogRepo) NexradStations(ctx context.Context, year, month, day string) ([]string, error) {
	return f.nexStations[year+"/"+month+"/"+day], nil
}
func (f *fakeCatalogRepo) StationMap(ctx context.Context) ([]catalog.Station, error) {
	return f.stations, nil
}

// fakeObjectStore keys listings by bucket + "|" + prefix and objects by
// bucket + "|" + key.
type fakeObjectStore struct {
	files   map[string][]string
	objects map[string]bool

	copyCalls int
	copyErr   error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		files:   make(map[string][]string),
		objects: make(map[string]bool),
	}
}

func (f *fakeObjectStore) ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error) {
	return nil, nil
}

func (f *fakeObjectStore) ListFiles(ctx context.Context, bucket, prefix string) ([]string, error) {
	return f.files[bucket+"|"+prefix], nil
}

func (f *fakeObjectStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return f.objects[bucket+"|"+key], nil
}

func (f *fakeObjectStore) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copyCalls++
	f.objects[dstBucket+"|"+dstKey] = true
	return nil
}

type testEnv struct {
	server  *Server
	cfg     *config.Config
	users   *fakeUsersRepo
	logs    *fakeLogsRepo
	catalog *fakeCatalogRepo
	store   *fakeObjectStore
	clock   *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	usersRepo := newFakeUsersRepo()
	logsRepo := &fakeLogsRepo{}
	catalogRepo := &fakeCatalogRepo{
		years:       make(map[string][]string),
		days:        make(map[string][]string),
		hours:       make(map[string][]string),
		nexMonths:   make(map[string][]string),
		nexDays:     make(map[string][]string),
		nexStations: make(map[string][]string),
	}
	store := newFakeObjectStore()
	clock := clockwork.NewFakeClock()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	svc := users.NewService(usersRepo, cfg.SecretKey, cfg.AccessTokenValidityDuration)
	gate := quota.NewGate(usersRepo, logsRepo, clock)

	return &testEnv{
		server:  NewServer(cfg, logger, svc, catalogRepo, logsRepo, gate, store, clock),
		cfg:     cfg,
		users:   usersRepo,
		logs:    logsRepo,
		catalog: catalogRepo,
		store:   store,
		clock:   clock,
	}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a user through the API and returns a live token.
func (e *testEnv) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/user/create", "", gin.H{
		"full_name": "Test User",
		"username":  username,
		"password":  password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("user create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", resp.TokenType)
	}
	return resp.AccessToken
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error payload %q: %v", rec.Body.String(), err)
	}
	return resp.Detail
}
