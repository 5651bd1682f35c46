package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notification kinds as rendered by the client's history list.
const (
	KindMissedLog = "missed_log"
	KindEvent     = "event"
)

// NotificationRecord is one in-app notification history entry. Created only
// by the dispatcher; the client later flips Read; the retention sweep deletes
// records once CreatedAt falls outside the retention window. Field shape is
// part of the client contract (unread badge, history list) and must stay
// stable.
type NotificationRecord struct {
	ID        string            `gorm:"primaryKey"`
	UserID    string            `gorm:"index"`
	Title     string
	Body      string
	Kind      string
	Read      bool              `gorm:"default:false"`
	Data      datatypes.JSONMap
	CreatedAt time.Time         `gorm:"index"`
}
