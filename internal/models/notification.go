package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification statuses. Rows are created pending, advance to sent after a
// fully successful dispatch, and move to dismissed only by explicit user
// action. Rows are never deleted by user action.
const (
	NotificationStatusPending   = "pending"
	NotificationStatusSent      = "sent"
	NotificationStatusDismissed = "dismissed"
)

// Notification types emitted by the reminder strategies.
const (
	NotificationTypeMeal      = "meal"
	NotificationTypeHydration = "hydration"
	NotificationTypeExercise  = "exercise"
	NotificationTypeProgress  = "progress"
	NotificationTypeActivity  = "activity"
	NotificationTypeTest      = "test"
)

// Notification is a persisted reminder for a user.
type Notification struct {
	BaseModel

	UserID        string         `gorm:"type:uuid;index:idx_notifications_user_status" json:"user_id"`
	Type          string         `gorm:"type:varchar(32);not null" json:"type"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Message       string         `gorm:"type:text" json:"message"`
	ScheduledTime time.Time      `gorm:"index" json:"scheduled_time"`
	Status        string         `gorm:"type:varchar(16);default:'pending';index:idx_notifications_user_status" json:"status"`
	Metadata      datatypes.JSON `json:"metadata"`
	SentTime      *time.Time     `json:"sent_time"`
}
