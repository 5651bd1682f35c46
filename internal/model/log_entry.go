package model

import (
	"time"

	"gorm.io/datatypes"
)

// LogEntry is one journal entry, keyed by calendar date within a user's
// scope. Existence of the keyed row is the "user logged today" signal; the
// content itself is written by the app and opaque to the notifier.
type LogEntry struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    string         `gorm:"index:idx_user_log_date,unique"`
	Date      string         `gorm:"index:idx_user_log_date,unique"` // YYYY-MM-DD
	Content   datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
