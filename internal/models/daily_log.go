package models

import "time"

// FoodLog records one logged food item.
type FoodLog struct {
	BaseModel

	UserID   string    `gorm:"type:uuid;index" json:"user_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Calories int       `json:"calories"`
	LoggedAt time.Time `gorm:"index" json:"logged_at"`
}

// ExerciseLog records one logged workout.
type ExerciseLog struct {
	BaseModel

	UserID         string    `gorm:"type:uuid;index" json:"user_id"`
	Activity       string    `gorm:"type:varchar(128)" json:"activity"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned int       `json:"calories_burned"`
	LoggedAt       time.Time `gorm:"index" json:"logged_at"`
}

// WaterLog records one water intake entry.
type WaterLog struct {
	BaseModel

	UserID   string    `gorm:"type:uuid;index" json:"user_id"`
	AmountML int       `gorm:"column:amount_ml" json:"amount_ml"`
	LoggedAt time.Time `gorm:"index" json:"logged_at"`
}
