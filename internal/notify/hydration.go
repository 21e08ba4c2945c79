package notify

import (
	"fmt"
	"math"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

const (
	mlPerKG         = 33
	mlPerGlass      = 250
	defaultWeightKG = 70
	hydrationFirst  = 8
	hydrationLast   = 22
)

// Hours at which hydration reminders may fire. Together with the minute gate
// this keeps a fast tick interval from firing repeatedly within one hour.
var hydrationHours = map[int]struct{}{
	9: {}, 11: {}, 14: {}, 16: {}, 18: {}, 20: {},
}

// HydrationStrategy reminds the user to drink water while they are behind
// their daily target, at fixed hours on the hour.
type HydrationStrategy struct{}

func (HydrationStrategy) Name() string { return models.NotificationTypeHydration }

func (HydrationStrategy) Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error) {
	hour := now.Hour()
	if hour < hydrationFirst || hour > hydrationLast {
		return []Candidate{}, nil
	}
	if _, ok := hydrationHours[hour]; !ok {
		return []Candidate{}, nil
	}
	if now.Minute() != 0 {
		return []Candidate{}, nil
	}

	target := hydrationTargetML(profile.WeightKG)
	consumed := snapshot.WaterIntakeML
	if consumed >= target {
		return []Candidate{}, nil
	}

	remaining := target - consumed
	glasses := int(math.Ceil(float64(remaining) / mlPerGlass))

	return []Candidate{{
		Type:          models.NotificationTypeHydration,
		Title:         "Time to hydrate",
		Message:       fmt.Sprintf("You still need %dml of water today. That's about %d glasses.", remaining, glasses),
		ScheduledTime: now,
		Metadata: map[string]any{
			"target_ml":      target,
			"consumed_ml":    consumed,
			"remaining_ml":   remaining,
			"glasses_needed": glasses,
		},
	}}, nil
}

func hydrationTargetML(weightKG float64) int {
	if weightKG <= 0 {
		weightKG = defaultWeightKG
	}
	return int(weightKG * mlPerKG)
}
