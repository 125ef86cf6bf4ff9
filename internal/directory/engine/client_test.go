package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	var finished finishRequest
	var saved Grant

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer engine-token", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/interactions/abc":
			_ = json.NewEncoder(w).Encode(Interaction{
				UID:     "abc",
				Prompt:  Prompt{Name: PromptConsent, Details: PromptDetails{MissingOIDCScope: []string{"openid"}}},
				Params:  map[string]any{"client_id": "app"},
				Session: &Session{AccountID: "acct-1"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/interactions/abc/result":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&finished))
			_ = json.NewEncoder(w).Encode(finishResponse{RedirectTo: "https://engine.example.com/auth/abc"})
		case r.Method == http.MethodGet && r.URL.Path == "/grants/g1":
			_ = json.NewEncoder(w).Encode(Grant{ID: "g1", AccountID: "acct-1", ClientID: "app"})
		case r.Method == http.MethodPut && r.URL.Path == "/grants":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			_ = json.NewEncoder(w).Encode(saveGrantResponse{ID: "g2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", "engine-token")
	ctx := context.Background()

	in, err := c.InteractionDetails(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, PromptConsent, in.Prompt.Name)
	require.Equal(t, "app", in.ClientID())
	require.Equal(t, "acct-1", in.AccountID())

	_, err = c.InteractionDetails(ctx, "expired")
	require.ErrorIs(t, err, ErrInteractionNotFound)

	redirect, err := c.InteractionFinished(ctx, "abc", Result{Consent: &ConsentResult{GrantID: "g1"}}, true)
	require.NoError(t, err)
	require.Equal(t, "https://engine.example.com/auth/abc", redirect)
	require.True(t, finished.MergeWithLastSubmission)
	require.Equal(t, "g1", finished.Result.Consent.GrantID)

	_, err = c.InteractionFinished(ctx, "gone", Result{Error: "access_denied"}, false)
	require.ErrorIs(t, err, ErrInteractionNotFound)

	g, err := c.FindGrant(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, "app", g.ClientID)

	_, err = c.FindGrant(ctx, "nope")
	require.ErrorIs(t, err, ErrGrantNotFound)

	id, err := c.SaveGrant(ctx, Grant{AccountID: "acct-1", ClientID: "app", OIDCScopes: []string{"openid"}})
	require.NoError(t, err)
	require.Equal(t, "g2", id)
	require.Equal(t, []string{"openid"}, saved.OIDCScopes)
}

func TestInteractionAccessors(t *testing.T) {
	var in Interaction
	require.Empty(t, in.ClientID())
	require.Empty(t, in.AccountID())
}
