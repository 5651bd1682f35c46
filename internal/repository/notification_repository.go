package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// NotificationRepository owns the per-user notification history.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Append writes one history record. CreatedAt is stamped at write time when
// the caller leaves it zero.
func (r *NotificationRepository) Append(ctx context.Context, rec *model.NotificationRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListOlderThan returns the user's records with created_at strictly before
// cutoff. A record stamped exactly at cutoff is not included.
func (r *NotificationRepository) ListOlderThan(ctx context.Context, userID string, cutoff time.Time) ([]model.NotificationRecord, error) {
	var recs []model.NotificationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, cutoff).
		Order("created_at ASC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list stale notifications: %w", err)
	}
	return recs, nil
}

// DeleteOlderThan removes the user's records with created_at strictly before
// cutoff as one batch. The delete runs in a transaction so a failure leaves
// all of the user's records in place, never a partial subset.
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND created_at < ?", userID, cutoff).
			Delete(&model.NotificationRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete stale notifications: %w", res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
