package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the authenticated admin username.
	CtxKeySubject ctxKey = "subject"
)

// WithSubject stores the authenticated admin username on the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, subject)
}

// SubjectFromContext returns the authenticated admin username or "".
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
