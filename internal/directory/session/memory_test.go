package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	m := NewMemoryStore(10 * time.Minute)
	m.now = func() time.Time { return clock }

	token, err := m.Create(ctx, Session{Username: "admin", AccountID: "u1"})
	require.NoError(t, err)
	require.Len(t, token, 43)

	s, err := m.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "admin", s.Username)

	t.Run("activity slides the deadline", func(t *testing.T) {
		clock = clock.Add(9 * time.Minute)
		_, err := m.Get(ctx, token)
		require.NoError(t, err)

		clock = clock.Add(9 * time.Minute)
		s, err := m.Get(ctx, token)
		require.NoError(t, err)
		require.Equal(t, clock, s.LastActivity)
	})

	t.Run("idle sessions expire", func(t *testing.T) {
		clock = clock.Add(11 * time.Minute)
		_, err := m.Get(ctx, token)
		require.ErrorIs(t, err, ErrNotFound)
		require.Zero(t, m.Len())
	})

	t.Run("delete", func(t *testing.T) {
		tok, err := m.Create(ctx, Session{Username: "admin"})
		require.NoError(t, err)
		require.NoError(t, m.Delete(ctx, tok))
		_, err = m.Get(ctx, tok)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := m.Get(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := time.Now()

	m := NewMemoryStore(time.Minute)
	m.now = func() time.Time { return clock }

	stale, err := m.Create(ctx, Session{Username: "a"})
	require.NoError(t, err)
	clock = clock.Add(45 * time.Second)
	fresh, err := m.Create(ctx, Session{Username: "b"})
	require.NoError(t, err)

	clock = clock.Add(30 * time.Second)
	removed, err := m.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = m.Get(ctx, stale)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, fresh)
	require.NoError(t, err)
}
