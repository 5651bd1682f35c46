package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// LeaseRepository grants per-job-name leases backed by the store, so two
// processes (or an overlapping trigger firing) cannot run the same job kind
// concurrently.
type LeaseRepository struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// Acquire takes the lease for name on behalf of owner, valid for ttl. It
// returns false when another owner holds an unexpired lease. An expired lease
// is reclaimed regardless of its previous owner.
func (r *LeaseRepository) Acquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	acquired := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var lease model.JobLease
		err := tx.First(&lease, "name = ?", name).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			lease = model.JobLease{Name: name, Owner: owner, ExpiresAt: now.Add(ttl)}
			if err := tx.Create(&lease).Error; err != nil {
				return fmt.Errorf("create lease: %w", err)
			}
			acquired = true
			return nil
		case err != nil:
			return fmt.Errorf("find lease: %w", err)
		}

		if lease.Owner != owner && lease.ExpiresAt.After(now) {
			return nil
		}

		lease.Owner = owner
		lease.ExpiresAt = now.Add(ttl)
		if err := tx.Save(&lease).Error; err != nil {
			return fmt.Errorf("update lease: %w", err)
		}
		acquired = true
		return nil
	})
	return acquired, err
}

// Release drops the lease if owner still holds it. Releasing a lease taken
// over by someone else is a no-op.
func (r *LeaseRepository) Release(ctx context.Context, name, owner string) error {
	if err := r.db.WithContext(ctx).
		Where("name = ? AND owner = ?", name, owner).
		Delete(&model.JobLease{}).Error; err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	return nil
}
