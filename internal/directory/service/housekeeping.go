package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/internal/directory/store"
)

// DefaultAuditRetention is how long audit rows are kept.
const DefaultAuditRetention = 90 * 24 * time.Hour

// HousekeepingService periodically sweeps expired admin sessions and prunes
// audit rows older than the retention window.
type HousekeepingService struct {
	Store     store.Store
	Sessions  session.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour. A retention of 0 or less
// uses DefaultAuditRetention. Either st or sessions may be nil.
func NewHousekeepingService(
	st store.Store,
	sessions session.Store,
	logger *slog.Logger,
	interval, retention time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultAuditRetention
	}

	return &HousekeepingService{
		Store:     st,
		Sessions:  sessions,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("audit_retention", s.Retention),
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass. Each step is independent; a failure in one does
// not stop the others. It returns the number of successful steps.
func (s *HousekeepingService) Cleanup(ctx context.Context) int {
	s.Logger.Debug("starting housekeeping cleanup")

	var successful int

	if s.Sessions != nil {
		if n, err := s.Sessions.Sweep(ctx); err != nil {
			s.Logger.Error("failed to sweep admin sessions", slog.Any("error", err))
		} else {
			s.Logger.Debug("swept admin sessions", slog.Int("expired", n))
			successful++
		}
	}

	if s.Store != nil {
		cutoff := s.now().Add(-s.Retention)
		if n, err := s.Store.AuditLogs().DeleteBefore(ctx, cutoff); err != nil {
			s.Logger.Error("failed to prune audit logs", slog.Any("error", err))
		} else {
			s.Logger.Debug("pruned audit logs", slog.Int64("deleted", n), slog.Time("cutoff", cutoff))
			successful++
		}
	}

	s.Logger.Info("housekeeping cleanup completed", slog.Int("successful_cleanups", successful))
	return successful
}
