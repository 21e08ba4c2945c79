package models

// NotificationSettings stores per-user reminder preferences. One row per user,
// upserted through the settings service. Absence of a row means defaults.
type NotificationSettings struct {
	BaseModel

	UserID string `gorm:"type:uuid;uniqueIndex" json:"user_id"`

	MealReminders      bool `gorm:"default:true" json:"meal_reminders"`
	HydrationReminders bool `gorm:"default:true" json:"hydration_reminders"`
	ExerciseReminders  bool `gorm:"default:true" json:"exercise_reminders"`
	ProgressReminders  bool `gorm:"default:true" json:"progress_reminders"`
	ActivityReminders  bool `gorm:"default:true" json:"activity_reminders"`

	BreakfastTime string `gorm:"type:varchar(5);default:'08:00'" json:"breakfast_time"`
	LunchTime     string `gorm:"type:varchar(5);default:'12:30'" json:"lunch_time"`
	DinnerTime    string `gorm:"type:varchar(5);default:'19:00'" json:"dinner_time"`

	HydrationIntervalHours int    `gorm:"default:2" json:"hydration_interval_hours"`
	ExerciseTime           string `gorm:"type:varchar(5);default:'17:00'" json:"exercise_time"`
	ProgressDay            int    `gorm:"default:0" json:"progress_day"` // time.Weekday, Sunday == 0

	ChannelInApp bool `gorm:"default:true" json:"channel_in_app"`
	ChannelEmail bool `gorm:"default:false" json:"channel_email"`
}
