package notify

import (
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

const exerciseWindowMinutes = 15

// ExerciseStrategy nudges the user around their configured workout time when
// nothing has been logged today. The phrasing follows the weight goal.
type ExerciseStrategy struct{}

func (ExerciseStrategy) Name() string { return models.NotificationTypeExercise }

func (ExerciseStrategy) Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error) {
	if len(snapshot.TodayExercises) > 0 {
		return []Candidate{}, nil
	}

	match, err := withinMinutes(now, settings.ExerciseTime, exerciseWindowMinutes)
	if err != nil {
		return []Candidate{}, err
	}
	if !match {
		return []Candidate{}, nil
	}

	suggestion := suggestExercise(profile.Country)

	var message string
	switch snapshot.Goals.WeightGoal {
	case "lose":
		message = fmt.Sprintf("A workout now keeps you on track to your weight loss goal. How about %s?", suggestion)
	case "gain":
		message = fmt.Sprintf("Time to build some strength. How about %s to finish with resistance work?", suggestion)
	default:
		message = fmt.Sprintf("Keep the routine going. How about %s?", suggestion)
	}

	return []Candidate{{
		Type:          models.NotificationTypeExercise,
		Title:         "Time to move",
		Message:       message,
		ScheduledTime: now,
		Metadata: map[string]any{
			"suggestion":  suggestion,
			"weight_goal": snapshot.Goals.WeightGoal,
		},
	}}, nil
}
