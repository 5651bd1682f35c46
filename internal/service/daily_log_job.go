package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// Dispatcher delivers one notification for one user. NotificationService
// implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, title, body string, data map[string]string) error
}

const (
	missedLogTitle = "Don't break your streak!"
	missedLogBody  = "You haven't logged your day yet. Take a minute to reflect."
)

// DailyLogJob reminds every user who has not written today's journal entry.
type DailyLogJob struct {
	users      UserStore
	dispatcher Dispatcher
	loc        *time.Location
	limit      int
	log        *zap.Logger
	now        func() time.Time
}

func NewDailyLogJob(users UserStore, dispatcher Dispatcher, loc *time.Location, limit int, log *zap.Logger) *DailyLogJob {
	return &DailyLogJob{
		users:      users,
		dispatcher: dispatcher,
		loc:        loc,
		limit:      limit,
		log:        log,
		now:        time.Now,
	}
}

func (j *DailyLogJob) Name() string { return "daily_log" }

// Run checks every user's entry for today and dispatches a missed-log
// reminder to those without one. Per-user failures are logged and skipped;
// the run fails only when user enumeration itself fails. It returns after
// every user's work has settled.
func (j *DailyLogJob) Run(ctx context.Context) error {
	today := j.now().In(j.loc).Format(model.DateLayout)

	ids, err := j.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(j.limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			has, err := j.users.HasLogForDate(ctx, id, today)
			if err != nil {
				j.log.Warn("check daily log", zap.String("job", j.Name()), zap.String("user_id", id), zap.Error(err))
				return nil
			}
			if has {
				return nil
			}
			if err := j.dispatcher.Dispatch(ctx, id, missedLogTitle, missedLogBody, map[string]string{"type": model.KindMissedLog}); err != nil {
				j.log.Warn("dispatch missed-log reminder", zap.String("user_id", id), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
