package notify

import (
	"time"
)

// Shared fixtures for strategy tests.

func testSettings() Settings {
	return Settings{
		MealReminders:      true,
		HydrationReminders: true,
		ExerciseReminders:  true,
		ProgressReminders:  true,
		ActivityReminders:  true,
		MealTimes: []MealTime{
			{Name: "breakfast", Clock: "08:00"},
			{Name: "lunch", Clock: "12:30"},
			{Name: "dinner", Clock: "19:00"},
		},
		HydrationIntervalHours: 2,
		ExerciseTime:           "17:00",
		ProgressDay:            time.Sunday,
		ChannelInApp:           true,
	}
}

func testProfile() UserProfile {
	return UserProfile{
		UserID:   "user-1",
		Email:    "alice@example.com",
		Name:     "Alice",
		WeightKG: 70,
		HeightCM: 168,
		Age:      31,
		Gender:   "female",
		Country:  "vietnam",
	}
}

// clock builds a deterministic timestamp on a fixed date (2026-03-04 is a
// Wednesday) at the supplied wall-clock time.
func clock(hour, minute int) time.Time {
	return time.Date(2026, time.March, 4, hour, minute, 0, 0, time.UTC)
}
