package session

import (
	"context"
	"docbridge-svc/src/internal/config"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper periodically removes active-session entries for files whose
// persisted last activity predates the retention window. The batch is
// bounded so a backlog is spread across runs instead of cleared in one
// unbounded pass.
type Sweeper struct {
	service    Service
	repository Repository
	interval   time.Duration
	retention  time.Duration
	batchSize  int64
}

func NewSweeper(service Service, repository Repository, cfg *config.Configuration) *Sweeper {
	return &Sweeper{
		service:    service,
		repository: repository,
		interval:   time.Duration(cfg.Session.SweepIntervalMinutes) * time.Minute,
		retention:  time.Duration(cfg.Session.RetentionDays) * 24 * time.Hour,
		batchSize:  int64(cfg.Session.SweepBatchSize),
	}
}

// Run blocks until ctx is cancelled. Meant to run on its own goroutine;
// it holds no locks request handlers depend on.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.WithField("interval", s.interval.String()).Info("Stale session sweeper started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Stale session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)

	fileIDs, err := s.repository.FindStale(ctx, cutoff, s.batchSize)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch stale file sessions")
		return
	}

	if len(fileIDs) == 0 {
		return
	}

	removed := 0
	for _, fileID := range fileIDs {
		if err := s.service.PurgeFileKey(ctx, fileID); err != nil {
			logrus.WithError(err).WithField("file_id", fileID).Error("Failed to purge stale file session")
			continue
		}
		removed++
	}

	logrus.WithFields(logrus.Fields{
		"candidates": len(fileIDs),
		"removed":    removed,
	}).Info("Stale file sessions swept")
}
