package model

import "time"

// DateLayout is the calendar-date key format used for journal entries and
// important dates.
const DateLayout = "2006-01-02"

// User stores journaling account metadata. PushToken is empty when the user
// never registered a device for push delivery.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string
	PushToken string
	CreatedAt time.Time
	UpdatedAt time.Time
}
