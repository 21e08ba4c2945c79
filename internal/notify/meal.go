package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

const (
	mealWindowMinutes    = 15
	defaultDailyCalories = 2000
	maxMealSuggestions   = 2
)

// MealStrategy reminds the user around each configured meal time. At most one
// meal reminder fires per evaluation even when windows overlap: the first
// matching meal in iteration order wins.
type MealStrategy struct{}

func (MealStrategy) Name() string { return models.NotificationTypeMeal }

func (MealStrategy) Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error) {
	for _, meal := range settings.MealTimes {
		match, err := withinMinutes(now, meal.Clock, mealWindowMinutes)
		if err != nil {
			return []Candidate{}, fmt.Errorf("meal %s: %w", meal.Name, err)
		}
		if !match {
			continue
		}

		remaining := remainingCalories(snapshot)
		ideas := suggestMeals(profile.Country, meal.Name, maxMealSuggestions)

		message := fmt.Sprintf("It's almost time for %s. You have about %d kcal left today.", meal.Name, remaining)
		if len(ideas) > 0 {
			message += " Ideas: " + strings.Join(ideas, ", ") + "."
		}

		return []Candidate{{
			Type:          models.NotificationTypeMeal,
			Title:         fmt.Sprintf("Time for %s", meal.Name),
			Message:       message,
			ScheduledTime: now,
			Metadata: map[string]any{
				"meal":               meal.Name,
				"remaining_calories": remaining,
				"suggestions":        ideas,
			},
		}}, nil
	}

	return []Candidate{}, nil
}

func remainingCalories(snapshot ContextSnapshot) int {
	target := snapshot.Goals.DailyCalories
	if target <= 0 {
		target = defaultDailyCalories
	}

	consumed := 0
	for _, food := range snapshot.TodayFoods {
		consumed += food.Calories
	}

	remaining := target - consumed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
