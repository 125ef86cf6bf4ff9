package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/engine"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const interactionUsers = `[
	{"id": "alice", "email": "alice@example.com", "password": "wonderland", "name": "Alice"}
]`

var (
	loginInteraction = engine.Interaction{
		UID:    "login-1",
		Prompt: engine.Prompt{Name: engine.PromptLogin},
		Params: map[string]any{"client_id": "demo-app"},
	}
	consentInteraction = engine.Interaction{
		UID: "consent-1",
		Prompt: engine.Prompt{Name: engine.PromptConsent, Details: engine.PromptDetails{
			MissingOIDCScope:  []string{"openid", "email"},
			MissingOIDCClaims: []string{"roles"},
		}},
		Params:  map[string]any{"client_id": "demo-app"},
		Session: &engine.Session{AccountID: "alice"},
	}
)

func newInteractionRouter(t *testing.T, eng *fakeEngine) *Router {
	t.Helper()
	dir, err := backend.NewLocal([]byte(interactionUsers), slogx.Discard())
	require.NoError(t, err)

	r := NewRouter("test", nil, slogx.Discard())
	r.Directory = dir
	r.Engine = eng
	r.ApplyRoutes()
	return r
}

func TestInteraction_Show(t *testing.T) {
	eng := newFakeEngine(loginInteraction, consentInteraction, engine.Interaction{
		UID:    "other-1",
		Prompt: engine.Prompt{Name: "select_account"},
	})
	r := newInteractionRouter(t, eng)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/interaction/login-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `action="/interaction/login-1/login"`)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/interaction/consent-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Authorize demo-app")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/interaction/other-1", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/interaction/expired", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "session_expired")
}

func TestInteraction_Login(t *testing.T) {
	t.Run("success finishes the login prompt", func(t *testing.T) {
		eng := newFakeEngine(loginInteraction)
		r := newInteractionRouter(t, eng)

		rec := serve(r, postForm("/interaction/login-1/login", url.Values{
			"email":    {" alice@example.com "},
			"password": {"wonderland"},
		}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "https://op.example.com/auth/login-1", rec.Header().Get("Location"))

		call := eng.lastFinish(t)
		require.False(t, call.Merge)
		require.NotNil(t, call.Result.Login)
		require.Equal(t, "alice", call.Result.Login.AccountID)
	})

	for name, form := range map[string]url.Values{
		"wrong password": {"email": {"alice@example.com"}, "password": {"nope"}},
		"unknown email":  {"email": {"mallory@example.com"}, "password": {"wonderland"}},
		"malformed":      {"email": {"<b>not-an-email</b>"}, "password": {"wonderland"}},
		"missing fields": {},
	} {
		t.Run(name+" shows the generic message", func(t *testing.T) {
			eng := newFakeEngine(loginInteraction)
			r := newInteractionRouter(t, eng)

			rec := serve(r, postForm("/interaction/login-1/login", form))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), "Invalid email or password.")
			require.Empty(t, eng.finished)
		})
	}

	t.Run("held to the minimum duration", func(t *testing.T) {
		r := newInteractionRouter(t, newFakeEngine(loginInteraction))

		start := time.Now()
		serve(r, postForm("/interaction/login-1/login", url.Values{"email": {"x@example.com"}, "password": {"y"}}))
		require.GreaterOrEqual(t, time.Since(start), DefaultLoginMinDuration)
	})

	t.Run("success and failure take the same time", func(t *testing.T) {
		const floor = 150 * time.Millisecond
		dir, err := backend.NewLocal([]byte(interactionUsers), slogx.Discard())
		require.NoError(t, err)

		r := NewRouter("test", nil, slogx.Discard())
		r.Directory = dir
		r.Engine = newFakeEngine(loginInteraction)
		r.LoginMinDuration = floor
		r.ApplyRoutes()

		timed := func(password string) (time.Duration, int) {
			start := time.Now()
			rec := serve(r, postForm("/interaction/login-1/login", url.Values{
				"email":    {"alice@example.com"},
				"password": {password},
			}))
			return time.Since(start), rec.Code
		}

		ok, okCode := timed("wonderland")
		bad, badCode := timed("nope")
		require.Equal(t, http.StatusSeeOther, okCode)
		require.Equal(t, http.StatusUnauthorized, badCode)

		require.GreaterOrEqual(t, ok, floor)
		require.GreaterOrEqual(t, bad, floor)
		diff := ok - bad
		if diff < 0 {
			diff = -diff
		}
		require.Less(t, diff, 50*time.Millisecond, "success %v, failure %v", ok, bad)
	})

	t.Run("consent prompt is rejected", func(t *testing.T) {
		r := newInteractionRouter(t, newFakeEngine(consentInteraction))
		rec := serve(r, postForm("/interaction/consent-1/login", url.Values{}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("engine failure is opaque", func(t *testing.T) {
		eng := newFakeEngine(loginInteraction)
		eng.err = errors.New("dial tcp: connection refused")
		r := newInteractionRouter(t, eng)

		rec := serve(r, postForm("/interaction/login-1/login", url.Values{}))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestInteraction_Confirm(t *testing.T) {
	t.Run("creates a grant for the account and client", func(t *testing.T) {
		eng := newFakeEngine(consentInteraction)
		r := newInteractionRouter(t, eng)

		rec := serve(r, postForm("/interaction/consent-1/confirm", url.Values{}))
		require.Equal(t, http.StatusSeeOther, rec.Code)

		require.Len(t, eng.saved, 1)
		g := eng.saved[0]
		require.Equal(t, "alice", g.AccountID)
		require.Equal(t, "demo-app", g.ClientID)
		require.Equal(t, []string{"openid", "email"}, g.OIDCScopes)
		require.Equal(t, []string{"roles"}, g.OIDCClaims)

		call := eng.lastFinish(t)
		require.True(t, call.Merge)
		require.Equal(t, "grant-new", call.Result.Consent.GrantID)
	})

	t.Run("extends an existing grant", func(t *testing.T) {
		i := consentInteraction
		i.GrantID = "grant-1"
		eng := newFakeEngine(i)
		eng.grants["grant-1"] = engine.Grant{
			ID:         "grant-1",
			AccountID:  "alice",
			ClientID:   "demo-app",
			OIDCScopes: []string{"openid"},
		}
		r := newInteractionRouter(t, eng)

		rec := serve(r, postForm("/interaction/consent-1/confirm", url.Values{}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, []string{"openid", "email"}, eng.grants["grant-1"].OIDCScopes)
		require.Equal(t, "grant-1", eng.lastFinish(t).Result.Consent.GrantID)
	})

	t.Run("requires a consent prompt with a session", func(t *testing.T) {
		noSession := consentInteraction
		noSession.UID = "consent-2"
		noSession.Session = nil
		eng := newFakeEngine(loginInteraction, noSession)
		r := newInteractionRouter(t, eng)

		require.Equal(t, http.StatusBadRequest, serve(r, postForm("/interaction/login-1/confirm", nil)).Code)
		require.Equal(t, http.StatusBadRequest, serve(r, postForm("/interaction/consent-2/confirm", nil)).Code)
		require.Empty(t, eng.saved)
	})
}

func TestInteraction_AbortAndError(t *testing.T) {
	eng := newFakeEngine(loginInteraction)
	r := newInteractionRouter(t, eng)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/interaction/login-1/abort", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	call := eng.lastFinish(t)
	require.Equal(t, "access_denied", call.Result.Error)
	require.Equal(t, "End-User aborted interaction", call.Result.ErrorDescription)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/error?error=invalid_client&error_description=unknown+client&state=s1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_client")
	require.Contains(t, rec.Body.String(), "unknown client")
	require.Contains(t, rec.Body.String(), "s1")
}
