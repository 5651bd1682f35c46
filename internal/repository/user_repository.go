package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// UserRepository provides the read-only user views the jobs consume. All
// reads are point-in-time snapshots; there is no transactional guarantee
// across calls for the same user.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListIDs enumerates every user identifier in one call.
func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.User{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// PushToken returns the user's delivery token; empty when the user never
// registered for push.
func (r *UserRepository) PushToken(ctx context.Context, userID string) (string, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Select("push_token").First(&user, "id = ?", userID).Error; err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	return user.PushToken, nil
}

// HasLogForDate reports whether a journal entry row exists for the given
// YYYY-MM-DD date.
func (r *UserRepository) HasLogForDate(ctx context.Context, userID, date string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.LogEntry{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count log entries: %w", err)
	}
	return count > 0, nil
}

// ToolConfig loads one tool configuration by key. An absent config is not an
// error: it returns (nil, nil).
func (r *UserRepository) ToolConfig(ctx context.Context, userID, key string) (*model.ToolConfig, error) {
	var cfg model.ToolConfig
	err := r.db.WithContext(ctx).Where("user_id = ? AND key = ?", userID, key).First(&cfg).Error
	switch {
	case err == nil:
		return &cfg, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find tool config: %w", err)
	}
}
