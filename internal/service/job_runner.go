package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prejin2310/paperlesh-notifier/internal/metrics"
)

// Job is one scheduled batch operation over the full user set.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobRunner guards each job with a per-name lease so an overlapping trigger
// firing (host retry, manual re-invocation) cannot run the same job kind
// concurrently, and bounds each run with a wall-clock timeout.
type JobRunner struct {
	leases  LeaseStore
	owner   string
	timeout time.Duration
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewJobRunner(leases LeaseStore, timeout time.Duration, m *metrics.Collector, log *zap.Logger) *JobRunner {
	return &JobRunner{
		leases:  leases,
		owner:   uuid.NewString(),
		timeout: timeout,
		metrics: m,
		log:     log,
	}
}

// Run executes the job under its lease. A lease held by another run means
// this trigger is skipped, not failed. The lease TTL outlives the run
// timeout so a crashed holder expires instead of wedging the schedule.
func (r *JobRunner) Run(ctx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ok, err := r.leases.Acquire(ctx, job.Name(), r.owner, r.timeout+time.Minute)
	if err != nil {
		r.metrics.RecordJobRun(job.Name(), false)
		r.log.Error("acquire job lease", zap.String("job", job.Name()), zap.Error(err))
		return
	}
	if !ok {
		r.log.Warn("job already running, skipping trigger", zap.String("job", job.Name()))
		return
	}
	defer func() {
		if err := r.leases.Release(context.Background(), job.Name(), r.owner); err != nil {
			r.log.Warn("release job lease", zap.String("job", job.Name()), zap.Error(err))
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		r.metrics.RecordJobRun(job.Name(), false)
		r.log.Error("job failed", zap.String("job", job.Name()), zap.Error(err))
		return
	}
	r.metrics.RecordJobRun(job.Name(), true)
	r.log.Info("job completed", zap.String("job", job.Name()), zap.Duration("took", time.Since(start)))
}
