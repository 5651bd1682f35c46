package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

const eventTitle = "Important Date Today!"

// ImportantDateJob notifies users about dated items whose month and day
// match today. Every match dispatches independently; a user with several
// matches gets several notifications.
type ImportantDateJob struct {
	users      UserStore
	dispatcher Dispatcher
	loc        *time.Location
	limit      int
	log        *zap.Logger
	now        func() time.Time
}

func NewImportantDateJob(users UserStore, dispatcher Dispatcher, loc *time.Location, limit int, log *zap.Logger) *ImportantDateJob {
	return &ImportantDateJob{
		users:      users,
		dispatcher: dispatcher,
		loc:        loc,
		limit:      limit,
		log:        log,
		now:        time.Now,
	}
}

func (j *ImportantDateJob) Name() string { return "important_dates" }

// Run matches every user's dated items against today and dispatches one
// event notification per match. Users without the important-dates tool are
// skipped. Per-user failures are logged and isolated.
func (j *ImportantDateJob) Run(ctx context.Context) error {
	today := j.now().In(j.loc)

	ids, err := j.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(j.limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			cfg, err := j.users.ToolConfig(ctx, id, model.ToolImportantDates)
			if err != nil {
				j.log.Warn("load important dates", zap.String("job", j.Name()), zap.String("user_id", id), zap.Error(err))
				return nil
			}
			if cfg == nil {
				return nil
			}
			for _, item := range MatchingItems(today, cfg.Items()) {
				body := fmt.Sprintf("It's %s: %s", item.Title, item.Subtitle)
				if err := j.dispatcher.Dispatch(ctx, id, eventTitle, body, map[string]string{"type": model.KindEvent}); err != nil {
					j.log.Warn("dispatch event reminder", zap.String("user_id", id), zap.String("item", item.Title), zap.Error(err))
				}
			}
			return nil
		})
	}
	return g.Wait()
}
