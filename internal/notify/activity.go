package notify

import (
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

// ActivityLeadMinutes is the look-ahead horizon for live activity reminders.
const ActivityLeadMinutes = 60

// ActivityStrategy reminds users about live activities starting in exactly 15
// minutes or starting now. It is the only strategy that may emit more than one
// candidate per evaluation: one per (activity, threshold).
type ActivityStrategy struct{}

func (ActivityStrategy) Name() string { return models.NotificationTypeActivity }

func (ActivityStrategy) Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error) {
	candidates := []Candidate{}

	for _, activity := range snapshot.UpcomingActivities {
		until := activity.ScheduledStart.Sub(now)
		if until < 0 {
			continue
		}
		minutes := int(until.Minutes())
		if minutes != 15 && minutes != 0 {
			continue
		}

		candidates = append(candidates, Candidate{
			Type:          models.NotificationTypeActivity,
			Title:         activityTitle(activity, minutes),
			Message:       activityMessage(activity, minutes),
			ScheduledTime: activity.ScheduledStart,
			Metadata: map[string]any{
				"activity_id":         activity.ID,
				"activity_type":       activity.Type,
				"minutes_until_start": minutes,
				"is_joined":           activity.IsJoined,
			},
		})
	}

	return candidates, nil
}

func activityTitle(activity UpcomingActivity, minutes int) string {
	if minutes == 0 {
		return fmt.Sprintf("%s is starting now", activity.Title)
	}
	return fmt.Sprintf("%s starts in 15 minutes", activity.Title)
}

func activityMessage(activity UpcomingActivity, minutes int) string {
	switch {
	case activity.IsJoined && minutes == 0:
		return fmt.Sprintf("%s is starting now. Jump in!", activity.Title)
	case activity.IsJoined:
		return fmt.Sprintf("%s starts in 15 minutes. Get ready!", activity.Title)
	case minutes == 0:
		return fmt.Sprintf("%s is starting now. There's still time to join.", activity.Title)
	default:
		return fmt.Sprintf("%s starts in 15 minutes. Join now so you don't miss it.", activity.Title)
	}
}
