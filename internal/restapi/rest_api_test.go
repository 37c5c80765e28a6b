package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charizard.ecotrip.dev/internal/app"
	"charizard.ecotrip.dev/internal/appconf"
	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/storage"
)

const testAdminKey = "admin-secret"

func newTestAPI(t *testing.T) (*RestAPI, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	application := &app.Application{
		Config: app.Config{
			Port:        8080,
			Env:         appconf.Test,
			AdminAPIKey: testAdminKey,
			RateLimit:   1000,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  store,
	}
	return NewRestAPI(application), store
}

func doRequest(handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:51234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}

func seedUserKey(t *testing.T, store *storage.MemoryStore, userID, key string) {
	t.Helper()
	require.NoError(t, store.SetAPIKey(context.Background(), userID, key, "test-app"))
}

func TestRouterSharesUsersSubtree(t *testing.T) {
	api, _ := newTestAPI(t)

	var router http.Handler
	require.NotPanics(t, func() { router = api.Router() }, "static and wildcard /users/ routes must coexist")

	// The static register route and the {id} wildcard overlap under /users/;
	// each must dispatch to its own handler.
	rec := doRequest(router, http.MethodPost, "/users/register", `{"app_name":"overlap-check"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg models.RegisterResponse
	decodeBody(t, rec, &reg)
	require.NotEmpty(t, reg.UserID)

	rec = doRequest(router, http.MethodPost, "/users/"+reg.UserID+"/transit",
		`{"mode":"bus","distance_km":1}`, map[string]string{"X-API-Key": reg.APIKey})
	require.Equal(t, http.StatusCreated, rec.Code)

	var status models.StatusResponse
	decodeBody(t, rec, &status)
	assert.Equal(t, "ok", status.Status)

	// Register still wins over the wildcard: an empty body hits the register
	// handler's validation, never the transit handler's.
	rec = doRequest(router, http.MethodPost, "/users/register", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_app_name", errorReason(t, rec))
}

func TestHealthHandler(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doRequest(api.Router(), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.HealthResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.OK)
	assert.Equal(t, "charizard", resp.Service)
	assert.NotZero(t, resp.Time)
}

func TestRegisterHandler(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()

	rec := doRequest(router, http.MethodPost, "/users/register", `{"app_name":"my-app"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	decodeBody(t, rec, &resp)
	assert.True(t, strings.HasPrefix(resp.UserID, "u_"))
	assert.Len(t, resp.APIKey, 32)
	assert.Equal(t, "my-app", resp.AppName)

	// The returned key authenticates against the stored hash.
	ok, err := store.CheckAPIKey(context.Background(), resp.UserID, resp.APIKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterHandlerRejectsBadInput(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	rec := doRequest(router, http.MethodPost, "/users/register", `{not json`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", errorReason(t, rec))

	rec = doRequest(router, http.MethodPost, "/users/register", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_app_name", errorReason(t, rec))
}

func TestUserEndpointsRequireAPIKey(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/users/u_1/transit"},
		{http.MethodGet, "/users/u_1/lifetime-footprint"},
		{http.MethodGet, "/users/u_1/analytics"},
		{http.MethodGet, "/users/u_1/suggestions"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := doRequest(router, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing key")
			assert.Equal(t, "unauthorized", errorReason(t, rec))

			rec = doRequest(router, p.method, p.path, "", map[string]string{"X-API-Key": "wrong-key"})
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "mismatched key")
		})
	}

	// A key for one user never opens another user's path.
	rec := doRequest(router, http.MethodGet, "/users/u_2/lifetime-footprint", "", map[string]string{"X-API-Key": "good-key"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserEndpointsRejectMalformedUserID(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	rec := doRequest(router, http.MethodGet, "/users/u!1/lifetime-footprint", "", map[string]string{"X-API-Key": "k"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user id contains invalid characters", errorReason(t, rec))
}

func TestTransitHandler(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")
	auth := map[string]string{"X-API-Key": "good-key"}

	rec := doRequest(router, http.MethodPost, "/users/u_1/transit",
		`{"mode":"car","distance_km":10,"fuel_type":"petrol","vehicle_size":"small","occupancy":2}`, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.StatusResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)

	events, err := store.GetEvents(context.Background(), "u_1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "car", events[0].Mode)
	assert.Equal(t, 2.0, events[0].Occupancy)
	assert.NotZero(t, events[0].TS, "missing ts defaults to ingestion time")
}

func TestTransitHandlerValidation(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")
	auth := map[string]string{"X-API-Key": "good-key"}

	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"malformed json", `{"mode":`, "invalid_json"},
		{"missing mode", `{"distance_km":5}`, "missing_fields"},
		{"missing distance", `{"mode":"bus"}`, "missing_fields"},
		{"unknown mode", `{"mode":"rocket","distance_km":5}`, "invalid mode"},
		{"negative distance", `{"mode":"bus","distance_km":-1}`, "negative distance"},
		{"fractional occupancy", `{"mode":"car","distance_km":5,"occupancy":0.5}`, "occupancy below minimum"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/users/u_1/transit", tc.body, auth)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.reason, errorReason(t, rec))
		})
	}

	events, err := store.GetEvents(context.Background(), "u_1")
	require.NoError(t, err)
	assert.Empty(t, events, "rejected events are never stored")
}

func TestFootprintHandler(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")
	auth := map[string]string{"X-API-Key": "good-key"}

	rec := doRequest(router, http.MethodGet, "/users/u_1/lifetime-footprint", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var empty models.FootprintResponse
	decodeBody(t, rec, &empty)
	assert.Equal(t, "u_1", empty.UserID)
	assert.Zero(t, empty.LifetimeKgCO2, "no events means zeros, not an error")

	now := time.Now().Unix()
	day := int64(24 * 3600)
	addStoredEvent(t, store, "u_1", "bus", 10, now-day)
	addStoredEvent(t, store, "u_1", "bus", 10, now-40*day)

	rec = doRequest(router, http.MethodGet, "/users/u_1/lifetime-footprint", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FootprintResponse
	decodeBody(t, rec, &resp)
	assert.InDelta(t, 0.73, resp.Last7DaysKgCO2, 1e-9)
	assert.InDelta(t, 0.73, resp.Last30DayKgCO2, 1e-9)
	assert.InDelta(t, 1.46, resp.LifetimeKgCO2, 1e-9)
}

func addStoredEvent(t *testing.T, store *storage.MemoryStore, userID, mode string, distanceKM float64, ts int64) {
	t.Helper()
	ev, err := models.NewTransitEvent(userID, mode, "", "", 1.0, distanceKM, ts)
	require.NoError(t, err)
	require.NoError(t, store.AddEvent(context.Background(), ev))
}

func TestAnalyticsHandlerStrictComparison(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")
	auth := map[string]string{"X-API-Key": "good-key"}
	now := time.Now().Unix()

	// Sole active user: their week equals the peer average exactly, so they
	// are not above it.
	addStoredEvent(t, store, "u_1", "bus", 10, now)

	rec := doRequest(router, http.MethodGet, "/users/u_1/analytics", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AnalyticsResponse
	decodeBody(t, rec, &resp)
	assert.InDelta(t, 0.73, resp.ThisWeekKgCO2, 1e-9)
	assert.InDelta(t, 0.73, resp.PeerWeekAvgKgCO2, 1e-9)
	assert.False(t, resp.AbovePeerAvg)

	// A lighter peer pulls the average down below the user's week.
	addStoredEvent(t, store, "u_2", "bus", 1, now)

	rec = doRequest(router, http.MethodGet, "/users/u_1/analytics", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.True(t, resp.AbovePeerAvg)
}

func TestSuggestionsHandlerThreshold(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")
	auth := map[string]string{"X-API-Key": "good-key"}
	now := time.Now().Unix()

	rec := doRequest(router, http.MethodGet, "/users/u_1/suggestions", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SuggestionsResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Suggestions, 1)
	assert.Contains(t, resp.Suggestions[0], "Nice work")

	// Push the week over the 20 kg threshold: bus at 0.073 kg/km x 300 km.
	addStoredEvent(t, store, "u_1", "bus", 300, now)

	rec = doRequest(router, http.MethodGet, "/users/u_1/suggestions", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Suggestions, 2)
	assert.Contains(t, resp.Suggestions[0], "subway or bus")
}

func TestRequestLoggingMiddlewareAppendsRecords(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUserKey(t, store, "u_1", "good-key")

	doRequest(router, http.MethodGet, "/health", "", nil)
	doRequest(router, http.MethodGet, "/users/u_1/lifetime-footprint", "", map[string]string{"X-API-Key": "good-key"})

	logs, err := store.GetLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "/health", logs[0].Path)
	assert.Equal(t, http.StatusOK, logs[0].Status)
	assert.Equal(t, "", logs[0].UserID)
	assert.Equal(t, "192.0.2.1", logs[0].ClientIP)

	assert.Equal(t, "/users/u_1/lifetime-footprint", logs[1].Path)
	assert.Equal(t, "u_1", logs[1].UserID)
}

func TestRateLimitMiddleware(t *testing.T) {
	store := storage.NewMemoryStore()
	application := &app.Application{
		Config: app.Config{Env: appconf.Test, AdminAPIKey: testAdminKey, RateLimit: 1},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  store,
	}
	api := NewRestAPI(application)
	router := api.Router()

	rec := doRequest(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", errorReason(t, rec))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	// Distinct API keys get distinct buckets.
	rec = doRequest(router, http.MethodGet, "/health", "", map[string]string{"X-API-Key": "other"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPathUserID(t *testing.T) {
	assert.Equal(t, "u_1", pathUserID("/users/u_1/transit"))
	assert.Equal(t, "u_1", pathUserID("/users/u_1/lifetime-footprint"))
	assert.Equal(t, "", pathUserID("/users/register"))
	assert.Equal(t, "", pathUserID("/health"))
	assert.Equal(t, "", pathUserID("/admin/logs"))
}
