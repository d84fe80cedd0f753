// Package worker contains the background loops the serve command runs
// alongside the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// ReaperStore defines the store operations needed by the reaper.
type ReaperStore interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper periodically purges closed projects whose scheduled deletion
// horizon has passed.
type Reaper struct {
	store    ReaperStore
	interval time.Duration
}

// NewReaper creates a reaper with the given store and interval.
func NewReaper(store ReaperStore, interval time.Duration) *Reaper {
	return &Reaper{
		store:    store,
		interval: interval,
	}
}

// Run starts the worker loop. Blocks until ctx is cancelled.
// Does NOT run immediately on start; the deletion horizon is 72 hours, so
// nothing is lost by waiting one interval.
func (r *Reaper) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "reaper",
		"interval", r.interval.String(),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "reaper",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			r.runPurge(ctx)
		}
	}
}

// runPurge executes a single purge cycle.
func (r *Reaper) runPurge(ctx context.Context) {
	start := time.Now()

	purged, err := r.store.PurgeExpired(ctx, start)
	if err != nil {
		// Check for graceful shutdown
		if ctx.Err() != nil {
			return
		}
		slog.Error("purge failed",
			"component", "worker",
			"action", "purge_failed",
			"error", err,
		)
		return
	}

	if purged > 0 {
		slog.Info("purge cycle completed",
			"component", "worker",
			"action", "purge_complete",
			"purged", purged,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
