// Package sync periodically exports the board as JSONL and uploads it to a
// backup destination.
package sync

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/todograph/internal/store"
)

// Destination receives serialized backups.
type Destination interface {
	Name() string
	Upload(ctx context.Context, payload []byte) error
}

// Scheduler exports the store on a fixed interval.
type Scheduler struct {
	store    store.Store
	dest     Destination
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(s store.Store, dest Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: s, dest: dest, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, syncing every interval. The first sync
// happens after one full interval, not at startup.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sync scheduler started",
		"destination", s.dest.Name(),
		"interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.logger.Error("sync failed", "destination", s.dest.Name(), "error", err)
			}
		}
	}
}

// SyncOnce exports the store and uploads the result.
func (s *Scheduler) SyncOnce(ctx context.Context) error {
	start := time.Now()

	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.store, &buf); err != nil {
		return err
	}
	if err := s.dest.Upload(ctx, buf.Bytes()); err != nil {
		return err
	}

	s.logger.Info("sync complete",
		"destination", s.dest.Name(),
		"bytes", buf.Len(),
		"duration", time.Since(start))
	return nil
}
