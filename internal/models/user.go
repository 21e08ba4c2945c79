package models

// User holds the profile attributes the reminder strategies consume.
type User struct {
	BaseModel

	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name     string  `gorm:"type:varchar(255)" json:"name"`
	WeightKG float64 `gorm:"column:weight_kg" json:"weight_kg"`
	HeightCM float64 `gorm:"column:height_cm" json:"height_cm"`
	Age      int     `json:"age"`
	Gender   string  `gorm:"type:varchar(16)" json:"gender"`
	Country  string  `gorm:"type:varchar(64)" json:"country"`
}

// UserGoal captures per-user nutrition and fitness targets.
type UserGoal struct {
	BaseModel

	UserID        string `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	DailyCalories int    `json:"daily_calories"`
	DailyWaterML  int    `gorm:"column:daily_water_ml" json:"daily_water_ml"`
	WeightGoal    string `gorm:"type:varchar(16);default:'maintain'" json:"weight_goal"` // lose | gain | maintain
}
