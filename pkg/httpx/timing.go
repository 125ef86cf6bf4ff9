package httpx

import (
	"net/http"
	"time"
)

// MinDuration holds every response of next until at least d has elapsed
// since the request arrived. Responses are buffered so nothing reaches the
// client early.
func MinDuration(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline := time.Now().Add(d)
			buf := newBufferedResponse()

			next.ServeHTTP(buf, r)

			if wait := time.Until(deadline); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-r.Context().Done():
					timer.Stop()
				}
			}
			buf.flushTo(w)
		})
	}
}
