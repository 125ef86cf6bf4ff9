package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestMinDuration(t *testing.T) {
	const floor = 50 * time.Millisecond

	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Path", "fast")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("nope"))
	})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(floor + 20*time.Millisecond)
		_, _ = w.Write([]byte("ok"))
	})

	t.Run("fast handler waits for the floor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		start := time.Now()
		httpx.MinDuration(floor)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.GreaterOrEqual(t, time.Since(start), floor)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "fast", rec.Header().Get("X-Path"))
		require.Equal(t, "nope", rec.Body.String())
	})

	t.Run("slow handler is not delayed further", func(t *testing.T) {
		rec := httptest.NewRecorder()
		start := time.Now()
		httpx.MinDuration(floor)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		elapsed := time.Since(start)
		require.GreaterOrEqual(t, elapsed, floor)
		require.Less(t, elapsed, 3*floor)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("zero floor passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.MinDuration(0)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequireBearer(t *testing.T) {
	h := httpx.RequireBearer("s3cret")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	httpx.RequireBearer("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	httpx.Chain(okHandler, mw("outer"), mw("inner")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}
