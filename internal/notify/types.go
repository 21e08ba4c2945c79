package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Candidate is an emitted, not-yet-persisted reminder.
type Candidate struct {
	Type          string
	Title         string
	Message       string
	ScheduledTime time.Time
	Metadata      map[string]any
}

// UserProfile carries the profile attributes strategies evaluate against.
type UserProfile struct {
	UserID   string
	Email    string
	Name     string
	WeightKG float64
	HeightCM float64
	Age      int
	Gender   string
	Country  string
}

// Goals captures the user's nutrition and fitness targets.
type Goals struct {
	DailyCalories int
	DailyWaterML  int
	WeightGoal    string // lose | gain | maintain
}

// FoodEntry is one food item logged today.
type FoodEntry struct {
	Name     string
	Calories int
}

// ExerciseEntry is one workout logged today.
type ExerciseEntry struct {
	Activity    string
	DurationMin int
}

// DayLog aggregates one day of the trailing week.
type DayLog struct {
	Date     time.Time
	Logged   bool
	WaterML  int
	Workouts int
}

// UpcomingActivity is a live activity starting soon, with the user's join state.
type UpcomingActivity struct {
	ID             string
	Title          string
	Type           string
	ScheduledStart time.Time
	HostEmail      string
	IsJoined       bool
}

// ContextSnapshot is everything a strategy may need about one user at one
// instant. It is assembled before evaluation so strategies stay pure.
type ContextSnapshot struct {
	TodayFoods         []FoodEntry
	TodayExercises     []ExerciseEntry
	WaterIntakeML      int
	Goals              Goals
	WeeklyLogs         []DayLog
	UpcomingActivities []UpcomingActivity
}

// MealTime pairs a meal name with its configured clock time ("HH:MM").
type MealTime struct {
	Name  string
	Clock string
}

// Settings is the resolved per-user reminder configuration, defaults already
// applied. A missing settings row never reaches a strategy.
type Settings struct {
	MealReminders      bool
	HydrationReminders bool
	ExerciseReminders  bool
	ProgressReminders  bool
	ActivityReminders  bool

	MealTimes              []MealTime // iteration order: breakfast, lunch, dinner
	HydrationIntervalHours int
	ExerciseTime           string
	ProgressDay            time.Weekday

	ChannelInApp bool
	ChannelEmail bool
}

// Strategy decides whether and what reminders to emit for one user at one
// instant. Evaluate is a pure function of its inputs: it always returns a
// slice (possibly empty), substitutes defaults for missing optional data, and
// never mutates its arguments.
type Strategy interface {
	Name() string
	Evaluate(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) ([]Candidate, error)
}

// parseClock parses an "HH:MM" string into hour and minute components.
func parseClock(value string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock string %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed clock hour %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed clock minute %q", value)
	}
	return hour, minute, nil
}

// withinMinutes reports whether now is within the given number of minutes of
// the clock time on now's calendar day.
func withinMinutes(now time.Time, clock string, minutes int) (bool, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return false, err
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	diff := now.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(minutes)*time.Minute, nil
}
