package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testAPIToken = "api-secret"

func newAPIRouter(t *testing.T, token string) *Router {
	t.Helper()
	dir, err := backend.NewLocal([]byte(interactionUsers), slogx.Discard())
	require.NoError(t, err)

	r := NewRouter("v1.2.3", nil, slogx.Discard())
	r.Directory = dir
	r.APIToken = token
	r.LoginMinDuration = 0
	r.ApplyRoutes()
	return r
}

func apiRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testAPIToken)
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestDirectoryAPI_Count(t *testing.T) {
	r := newAPIRouter(t, testAPIToken)

	rec := serve(r, apiRequest(http.MethodGet, "/api/v1/directory/count", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[directorysdk.CountResponse](t, rec).Count)
}

func TestDirectoryAPI_Find(t *testing.T) {
	r := newAPIRouter(t, testAPIToken)

	for name, target := range map[string]string{
		"by id":          "/api/v1/directory/find/alice",
		"by email path":  "/api/v1/directory/find/alice@example.com",
		"by email query": "/api/v1/directory/find?email=alice@example.com",
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(r, apiRequest(http.MethodGet, target, ""))
			require.Equal(t, http.StatusOK, rec.Code)

			claims := decode[map[string]any](t, rec)
			require.Equal(t, "alice", claims["sub"])
			require.Equal(t, "alice@example.com", claims["email"])
			require.NotContains(t, claims, "password")
		})
	}

	t.Run("unknown account", func(t *testing.T) {
		rec := serve(r, apiRequest(http.MethodGet, "/api/v1/directory/find/bob", ""))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "not_found", decode[directorysdk.ErrorResponse](t, rec).Error)
	})

	t.Run("missing id", func(t *testing.T) {
		rec := serve(r, apiRequest(http.MethodGet, "/api/v1/directory/find", ""))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDirectoryAPI_Validate(t *testing.T) {
	r := newAPIRouter(t, testAPIToken)

	t.Run("valid credentials", func(t *testing.T) {
		rec := serve(r, apiRequest(http.MethodPost, "/api/v1/directory/validate",
			`{"email":" alice@example.com ","password":"wonderland"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", decode[directorysdk.AccountResponse](t, rec).User["sub"])
	})

	for name, body := range map[string]string{
		"wrong password": `{"email":"alice@example.com","password":"nope"}`,
		"unknown email":  `{"email":"bob@example.com","password":"wonderland"}`,
		"empty password": `{"email":"alice@example.com","password":""}`,
		"email case":     `{"email":"Alice@Example.com","password":"wonderland"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(r, apiRequest(http.MethodPost, "/api/v1/directory/validate", body))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "Invalid email or password.", decode[directorysdk.ErrorResponse](t, rec).ErrorDescription)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(r, apiRequest(http.MethodPost, "/api/v1/directory/validate", `{"email":`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDirectoryAPI_Bearer(t *testing.T) {
	r := newAPIRouter(t, testAPIToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/directory/count", nil)
	rec := serve(r, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/directory/count", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	open := newAPIRouter(t, "")
	rec = serve(open, httptest.NewRequest(http.MethodGet, "/api/v1/directory/count", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := newAPIRouter(t, testAPIToken)

	t.Run("livez", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[directorysdk.HealthResponse](t, rec)
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "v1.2.3", body.Version)
		require.Nil(t, body.Checks)
	})

	t.Run("readyz reports absent components as disabled", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[directorysdk.HealthResponse](t, rec)
		require.NotNil(t, body.Checks)
		require.Equal(t, "disabled", body.Checks.Database)
		require.Equal(t, "disabled", body.Checks.Sessions)
	})

	t.Run("readyz pings the session store", func(t *testing.T) {
		h := ReadyzHandler(time.Now(), "test", nil, session.NewMemoryStore(time.Minute))
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		body := decode[directorysdk.HealthResponse](t, rec)
		require.Equal(t, "ok", body.Checks.Sessions)
	})

	t.Run("healthz includes the account count", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[directorysdk.HealthResponse](t, rec)
		require.Equal(t, "healthy", body.Status)
		require.NotNil(t, body.UserCount)
		require.Equal(t, 1, *body.UserCount)
	})
}
