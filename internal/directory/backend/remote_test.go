package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/stretchr/testify/require"
)

func newRemote(t *testing.T, h http.HandlerFunc) *Remote {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	r, err := NewRemote(RemoteConfig{URL: srv.URL, Token: "t0k"}, nil)
	require.NoError(t, err)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRemote_Count(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "Bearer t0k", req.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]int{"count": 5})
	})
	require.Equal(t, 5, r.Count(context.Background()))

	down := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	require.Equal(t, 0, down.Count(context.Background()))
}

func TestRemote_Find(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.URL.Path == "/find/u1":
			writeJSON(w, http.StatusOK, map[string]any{"id": "u1", "email": "alice@example.com"})
		case req.URL.Path == "/find" && req.URL.Query().Get("email") == "bob@example.com":
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"email": "bob@example.com"}})
		case req.URL.Path == "/find/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		}
	})
	ctx := context.Background()

	acc, err := r.Find(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acc.Email)

	acc, err = r.Find(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", acc.ID)

	_, err = r.Find(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.Find(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.Find(ctx, "broken")
	require.True(t, domain.IsTransient(err))
}

func TestRemote_Validate(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))

		switch body.Password {
		case "envelope":
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"email": body.Email, "roles": []string{"admin"}}})
		case "bare":
			writeJSON(w, http.StatusOK, map[string]any{"email": body.Email})
		case "legacy-invalid":
			writeJSON(w, http.StatusOK, map[string]any{"valid": false, "user": nil})
		case "created":
			writeJSON(w, http.StatusCreated, map[string]any{"user": map[string]any{"email": body.Email}})
		case "no-content":
			w.WriteHeader(http.StatusNoContent)
		case "upstream":
			w.WriteHeader(http.StatusBadGateway)
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
	})
	ctx := context.Background()

	acc, err := r.Validate(ctx, "alice@example.com", "envelope")
	require.NoError(t, err)
	require.True(t, acc.HasRole("admin"))

	acc, err = r.Validate(ctx, "alice@example.com", "bare")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acc.ID)

	acc, err = r.Validate(ctx, "alice@example.com", "created")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acc.Email)

	_, err = r.Validate(ctx, "alice@example.com", "no-content")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.Validate(ctx, "alice@example.com", "legacy-invalid")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.Validate(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.Validate(ctx, "alice@example.com", "upstream")
	require.True(t, domain.IsTransient(err))
}

func TestRemote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r, err := NewRemote(RemoteConfig{URL: url}, nil)
	require.NoError(t, err)

	_, err = r.Validate(context.Background(), "a@example.com", "x")
	require.True(t, domain.IsTransient(err))
	require.Equal(t, 0, r.Count(context.Background()))
}
