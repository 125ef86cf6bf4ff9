package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingService_Defaults(t *testing.T) {
	hk := NewHousekeepingService(nil, nil, slogx.Discard(), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, DefaultAuditRetention, hk.Retention)
	require.Equal(t, 0, hk.Cleanup(context.Background()))
}

func TestHousekeepingService_Cleanup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	audit := &AuditService{Store: s}
	sessions := session.NewMemoryStore(time.Minute)

	_, err := sessions.Create(ctx, session.Session{Username: "admin@localhost"})
	require.NoError(t, err)
	require.NoError(t, audit.Record(ctx, s, testActor, EntityRole, "r1", "create", map[string]any{"name": "x"}))

	hk := NewHousekeepingService(s, sessions, slogx.Discard(), time.Hour, 24*time.Hour)

	t.Run("keeps fresh rows", func(t *testing.T) {
		require.Equal(t, 2, hk.Cleanup(ctx))
		logs, err := audit.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, 1, sessions.Len())
	})

	t.Run("prunes rows past retention", func(t *testing.T) {
		hk.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
		require.Equal(t, 2, hk.Cleanup(ctx))

		logs, err := audit.List(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, logs)
	})
}

func TestHousekeepingService_StartStop(t *testing.T) {
	s := newTestStore(t)
	hk := NewHousekeepingService(s, session.NewMemoryStore(time.Minute), slogx.Discard(), 10*time.Millisecond, 0)
	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()
}
