package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prejin2310/paperlesh-notifier/internal/metrics"
)

// RetentionSweepJob purges each user's notification history older than the
// retention window. Each user's delete is one atomic batch; a failed batch
// for one user leaves their history intact and does not affect others.
type RetentionSweepJob struct {
	users     UserStore
	history   NotificationStore
	retention time.Duration
	limit     int
	metrics   *metrics.Collector
	log       *zap.Logger
	now       func() time.Time
}

func NewRetentionSweepJob(users UserStore, history NotificationStore, retention time.Duration, limit int, m *metrics.Collector, log *zap.Logger) *RetentionSweepJob {
	return &RetentionSweepJob{
		users:     users,
		history:   history,
		retention: retention,
		limit:     limit,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

func (j *RetentionSweepJob) Name() string { return "retention_sweep" }

// Run deletes records created strictly before now minus the retention
// window. Records at or after the cutoff are never touched, regardless of
// read status.
func (j *RetentionSweepJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	ids, err := j.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(j.limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			deleted, err := j.history.DeleteOlderThan(ctx, id, cutoff)
			if err != nil {
				j.log.Warn("sweep notification history", zap.String("job", j.Name()), zap.String("user_id", id), zap.Error(err))
				return nil
			}
			if deleted > 0 {
				j.metrics.RecordSweptRecords(deleted)
				j.log.Info("swept notification history", zap.String("user_id", id), zap.Int64("deleted", deleted))
			}
			return nil
		})
	}
	return g.Wait()
}
