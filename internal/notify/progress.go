package notify

import (
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

const progressHour = 18

// ProgressStrategy emits one weekly summary on the configured weekday at 18:00.
type ProgressStrategy struct{}

func (ProgressStrategy) Name() string { return models.NotificationTypeProgress }

func (ProgressStrategy) Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error) {
	if now.Weekday() != settings.ProgressDay || now.Hour() != progressHour {
		return []Candidate{}, nil
	}

	loggedDays := 0
	totalWater := 0
	totalWorkouts := 0
	for _, day := range snapshot.WeeklyLogs {
		if day.Logged {
			loggedDays++
		}
		totalWater += day.WaterML
		totalWorkouts += day.Workouts
	}

	avgWater := totalWater / 7

	return []Candidate{{
		Type:  models.NotificationTypeProgress,
		Title: "Your weekly progress",
		Message: fmt.Sprintf(
			"You logged %d of the last 7 days, drank %dml of water per day on average, and finished %d workouts. Keep it up!",
			loggedDays, avgWater, totalWorkouts,
		),
		ScheduledTime: now,
		Metadata: map[string]any{
			"logged_days":    loggedDays,
			"logged_ratio":   float64(loggedDays) / 7,
			"avg_water_ml":   avgWater,
			"total_workouts": totalWorkouts,
		},
	}}, nil
}
