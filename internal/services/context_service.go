package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
)

// ContextService assembles the evaluation snapshot for one user at one
// instant, so the strategies themselves never touch the database.
type ContextService struct {
	db         *gorm.DB
	activities *ActivityService
}

// NewContextService constructs a ContextService.
func NewContextService(db *gorm.DB, activities *ActivityService) (*ContextService, error) {
	if db == nil {
		return nil, errors.New("context service: db is required")
	}
	if activities == nil {
		return nil, errors.New("context service: activity service is required")
	}
	return &ContextService{db: db, activities: activities}, nil
}

// Snapshot gathers today's logs, goals, the trailing week's aggregates and the
// activities starting within the reminder lead window. It implements the
// scheduler's SnapshotSource contract.
func (s *ContextService) Snapshot(ctx context.Context, userID string, now time.Time) (notify.ContextSnapshot, error) {
	ctx = ensureContext(ctx)

	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -6)

	var foods []models.FoodLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, weekStart, now).
		Order("logged_at ASC").
		Find(&foods).Error; err != nil {
		return notify.ContextSnapshot{}, fmt.Errorf("context service: load food logs: %w", err)
	}

	var exercises []models.ExerciseLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, weekStart, now).
		Order("logged_at ASC").
		Find(&exercises).Error; err != nil {
		return notify.ContextSnapshot{}, fmt.Errorf("context service: load exercise logs: %w", err)
	}

	var waters []models.WaterLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, weekStart, now).
		Order("logged_at ASC").
		Find(&waters).Error; err != nil {
		return notify.ContextSnapshot{}, fmt.Errorf("context service: load water logs: %w", err)
	}

	snapshot := notify.ContextSnapshot{
		Goals:      notify.Goals{},
		WeeklyLogs: buildWeek(dayStart, foods, exercises, waters),
	}

	for _, food := range foods {
		if !food.LoggedAt.Before(dayStart) {
			snapshot.TodayFoods = append(snapshot.TodayFoods, notify.FoodEntry{
				Name:     food.Name,
				Calories: food.Calories,
			})
		}
	}
	for _, exercise := range exercises {
		if !exercise.LoggedAt.Before(dayStart) {
			snapshot.TodayExercises = append(snapshot.TodayExercises, notify.ExerciseEntry{
				Activity:    exercise.Activity,
				DurationMin: exercise.DurationMin,
			})
		}
	}
	for _, water := range waters {
		if !water.LoggedAt.Before(dayStart) {
			snapshot.WaterIntakeML += water.AmountML
		}
	}

	var goal models.UserGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	switch {
	case err == nil:
		snapshot.Goals = notify.Goals{
			DailyCalories: goal.DailyCalories,
			DailyWaterML:  goal.DailyWaterML,
			WeightGoal:    goal.WeightGoal,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No goals row; strategies substitute their defaults.
	default:
		return notify.ContextSnapshot{}, fmt.Errorf("context service: load goals: %w", err)
	}

	lead := time.Duration(notify.ActivityLeadMinutes) * time.Minute
	upcoming, err := s.activities.Upcoming(ctx, userID, now, now.Add(lead))
	if err != nil {
		return notify.ContextSnapshot{}, err
	}
	snapshot.UpcomingActivities = upcoming

	return snapshot, nil
}

// buildWeek buckets the raw log rows into the trailing seven calendar days,
// oldest first, today last.
func buildWeek(dayStart time.Time, foods []models.FoodLog, exercises []models.ExerciseLog, waters []models.WaterLog) []notify.DayLog {
	week := make([]notify.DayLog, 7)
	for i := range week {
		week[i].Date = dayStart.AddDate(0, 0, i-6)
	}

	// Buckets match on calendar date; DST transition days are 23 or 25 hours.
	dayIndex := func(at time.Time) int {
		y, m, d := at.In(dayStart.Location()).Date()
		for i := range week {
			wy, wm, wd := week[i].Date.Date()
			if y == wy && m == wm && d == wd {
				return i
			}
		}
		return -1
	}

	for _, food := range foods {
		if i := dayIndex(food.LoggedAt); i >= 0 && i < 7 {
			week[i].Logged = true
		}
	}
	for _, exercise := range exercises {
		if i := dayIndex(exercise.LoggedAt); i >= 0 && i < 7 {
			week[i].Logged = true
			week[i].Workouts++
		}
	}
	for _, water := range waters {
		if i := dayIndex(water.LoggedAt); i >= 0 && i < 7 {
			week[i].WaterML += water.AmountML
		}
	}
	return week
}

func startOfDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}
