package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/engine"
	"github.com/stretchr/testify/require"
)

type finishCall struct {
	UID    string
	Result engine.Result
	Merge  bool
}

// fakeEngine is an in-memory engine.Provider.
type fakeEngine struct {
	mu           sync.Mutex
	interactions map[string]engine.Interaction
	grants       map[string]engine.Grant
	finished     []finishCall
	saved        []engine.Grant
	err          error
}

func newFakeEngine(interactions ...engine.Interaction) *fakeEngine {
	e := &fakeEngine{
		interactions: make(map[string]engine.Interaction),
		grants:       make(map[string]engine.Grant),
	}
	for _, i := range interactions {
		e.interactions[i.UID] = i
	}
	return e
}

func (e *fakeEngine) InteractionDetails(ctx context.Context, uid string) (engine.Interaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return engine.Interaction{}, e.err
	}
	i, ok := e.interactions[uid]
	if !ok {
		return engine.Interaction{}, engine.ErrInteractionNotFound
	}
	return i, nil
}

func (e *fakeEngine) InteractionFinished(ctx context.Context, uid string, result engine.Result, merge bool) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finished = append(e.finished, finishCall{UID: uid, Result: result, Merge: merge})
	return "https://op.example.com/auth/" + uid, nil
}

func (e *fakeEngine) FindGrant(ctx context.Context, id string) (engine.Grant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.grants[id]
	if !ok {
		return engine.Grant{}, engine.ErrGrantNotFound
	}
	return g, nil
}

func (e *fakeEngine) SaveGrant(ctx context.Context, g engine.Grant) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g.ID == "" {
		g.ID = "grant-new"
	}
	e.grants[g.ID] = g
	e.saved = append(e.saved, g)
	return g.ID, nil
}

func (e *fakeEngine) lastFinish(t *testing.T) finishCall {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	require.NotEmpty(t, e.finished)
	return e.finished[len(e.finished)-1]
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
