package service

import (
	"context"
	"time"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// UserStore is the read-only view of user state the jobs consume.
// repository.UserRepository implements it. Reads are eventually-consistent
// snapshots; a failed read for one user never aborts the others.
type UserStore interface {
	// ListIDs enumerates every user identifier in one call.
	ListIDs(ctx context.Context) ([]string, error)
	// PushToken returns the user's delivery token, empty if never registered.
	PushToken(ctx context.Context, userID string) (string, error)
	// HasLogForDate reports whether a journal entry exists for the YYYY-MM-DD date.
	HasLogForDate(ctx context.Context, userID, date string) (bool, error)
	// ToolConfig loads one tool config by key; absent configs yield (nil, nil).
	ToolConfig(ctx context.Context, userID, key string) (*model.ToolConfig, error)
}

// NotificationStore owns the per-user notification history.
// repository.NotificationRepository implements it.
type NotificationStore interface {
	// Append durably writes one history record.
	Append(ctx context.Context, rec *model.NotificationRecord) error
	// DeleteOlderThan removes the user's records with created_at strictly
	// before cutoff as one atomic batch, returning the count removed.
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error)
}

// LeaseStore grants and releases per-job-name leases.
// repository.LeaseRepository implements it.
type LeaseStore interface {
	Acquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, owner string) error
}
