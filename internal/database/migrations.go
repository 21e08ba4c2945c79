package database

import (
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserGoal{},
		&models.FoodLog{},
		&models.ExerciseLog{},
		&models.WaterLog{},
		&models.Activity{},
		&models.ActivityParticipant{},
		&models.Notification{},
		&models.NotificationSettings{},
	)
}
