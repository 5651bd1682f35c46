package service

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prejin2310/paperlesh-notifier/internal/metrics"
	"github.com/prejin2310/paperlesh-notifier/internal/model"
	"github.com/prejin2310/paperlesh-notifier/internal/push"
)

func newTestMetrics() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

// fakeStore is an in-memory UserStore seeded per test.
type fakeStore struct {
	ids      []string
	listErr  error
	tokens   map[string]string
	tokenErr map[string]error
	logs     map[string]map[string]bool
	logErr   map[string]error
	configs  map[string]*model.ToolConfig
	cfgErr   map[string]error
}

func (f *fakeStore) ListIDs(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeStore) PushToken(_ context.Context, userID string) (string, error) {
	if err := f.tokenErr[userID]; err != nil {
		return "", err
	}
	return f.tokens[userID], nil
}

func (f *fakeStore) HasLogForDate(_ context.Context, userID, date string) (bool, error) {
	if err := f.logErr[userID]; err != nil {
		return false, err
	}
	return f.logs[userID][date], nil
}

func (f *fakeStore) ToolConfig(_ context.Context, userID, key string) (*model.ToolConfig, error) {
	if err := f.cfgErr[userID]; err != nil {
		return nil, err
	}
	cfg := f.configs[userID]
	if cfg == nil || cfg.Key != key {
		return nil, nil
	}
	return cfg, nil
}

type sweepCall struct {
	userID string
	cutoff time.Time
}

// fakeHistory records appends and sweeps.
type fakeHistory struct {
	mu        sync.Mutex
	records   []*model.NotificationRecord
	appendErr error
	deleted   map[string]int64
	deleteErr map[string]error
	sweeps    []sweepCall
}

func (f *fakeHistory) Append(_ context.Context, rec *model.NotificationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) DeleteOlderThan(_ context.Context, userID string, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[userID]; err != nil {
		return 0, err
	}
	f.sweeps = append(f.sweeps, sweepCall{userID: userID, cutoff: cutoff})
	return f.deleted[userID], nil
}

func (f *fakeHistory) byUser(userID string) []*model.NotificationRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.NotificationRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

type sendCall struct {
	token string
	msg   push.Message
}

// fakeSender records push attempts and optionally fails them.
type fakeSender struct {
	mu    sync.Mutex
	calls []sendCall
	err   error
}

func (f *fakeSender) Send(_ context.Context, token string, msg push.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sendCall{token: token, msg: msg})
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type dispatchCall struct {
	userID string
	title  string
	body   string
	data   map[string]string
}

// fakeDispatcher records dispatches without touching push or storage.
type fakeDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, userID, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dispatchCall{userID: userID, title: title, body: body, data: data})
	return f.err
}

func (f *fakeDispatcher) byUser(userID string) []dispatchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dispatchCall
	for _, c := range f.calls {
		if c.userID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeLeases hands out leases without a store.
type fakeLeases struct {
	held       bool
	acquireErr error
	acquired   []string
	released   []string
}

func (f *fakeLeases) Acquire(_ context.Context, name, _ string, _ time.Duration) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held {
		return false, nil
	}
	f.acquired = append(f.acquired, name)
	return true, nil
}

func (f *fakeLeases) Release(_ context.Context, name, _ string) error {
	f.released = append(f.released, name)
	return nil
}
