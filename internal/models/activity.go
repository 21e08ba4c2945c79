package models

import "time"

// Activity is a scheduled live activity (group run, cooking class, challenge).
type Activity struct {
	BaseModel

	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Type           string    `gorm:"type:varchar(64)" json:"type"`
	ScheduledStart time.Time `gorm:"index" json:"scheduled_start"`
	HostEmail      string    `gorm:"type:varchar(255)" json:"host_email"`
}

// ActivityParticipant marks a user as joined to an activity.
type ActivityParticipant struct {
	BaseModel

	ActivityID string `gorm:"type:uuid;index:idx_activity_participants,unique" json:"activity_id"`
	UserID     string `gorm:"type:uuid;index:idx_activity_participants,unique" json:"user_id"`
}
