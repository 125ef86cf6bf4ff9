// Package session holds admin console sessions keyed by an opaque token.
package session

import (
	"context"
	"errors"
	"time"
)

// DefaultIdleTimeout expires a session this long after its last use.
const DefaultIdleTimeout = 30 * time.Minute

// ErrNotFound is returned for unknown or expired tokens.
var ErrNotFound = errors.New("session: not found")

// Session is an authenticated admin.
type Session struct {
	Username     string    `json:"username"`
	AccountID    string    `json:"account_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store persists sessions. Get refreshes the idle deadline on every hit.
type Store interface {
	// Create stores s under a fresh random token and returns the token.
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	// Sweep drops expired sessions and reports how many were removed.
	// Stores with native expiry return 0.
	Sweep(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
