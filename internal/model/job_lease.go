package model

import "time"

// JobLease serializes runs of a job kind: at most one holder per job name
// until the lease expires. A stale lease (crashed holder) is reclaimed by the
// next acquirer once ExpiresAt has passed.
type JobLease struct {
	Name      string `gorm:"primaryKey"`
	Owner     string
	ExpiresAt time.Time
	UpdatedAt time.Time
}
