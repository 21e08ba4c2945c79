package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProgressStrategyFiresOnConfiguredDayAtSix(t *testing.T) {
	settings := testSettings()
	settings.ProgressDay = time.Wednesday // the fixture date is a Wednesday

	snapshot := ContextSnapshot{
		WeeklyLogs: []DayLog{
			{Logged: true, WaterML: 2000, Workouts: 1},
			{Logged: true, WaterML: 1500, Workouts: 0},
			{Logged: false},
			{Logged: true, WaterML: 2100, Workouts: 2},
			{Logged: false},
			{Logged: true, WaterML: 1400, Workouts: 0},
			{Logged: true, WaterML: 0, Workouts: 1},
		},
	}

	candidates, err := ProgressStrategy{}.Evaluate(testProfile(), snapshot, settings, clock(18, 0))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	candidate := candidates[0]
	require.Equal(t, 5, candidate.Metadata["logged_days"])
	require.InDelta(t, 5.0/7.0, candidate.Metadata["logged_ratio"], 0.0001)
	require.Equal(t, 1000, candidate.Metadata["avg_water_ml"])
	require.Equal(t, 4, candidate.Metadata["total_workouts"])
}

func TestProgressStrategySilentOnWrongDay(t *testing.T) {
	settings := testSettings()
	settings.ProgressDay = time.Sunday

	candidates, err := ProgressStrategy{}.Evaluate(testProfile(), ContextSnapshot{}, settings, clock(18, 0))
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestProgressStrategySilentOutsideEveningHour(t *testing.T) {
	settings := testSettings()
	settings.ProgressDay = time.Wednesday

	for _, hour := range []int{17, 19, 9} {
		candidates, err := ProgressStrategy{}.Evaluate(testProfile(), ContextSnapshot{}, settings, clock(hour, 0))
		require.NoError(t, err)
		require.Empty(t, candidates, "hour %d", hour)
	}
}

func TestProgressStrategyHandlesEmptyWeek(t *testing.T) {
	settings := testSettings()
	settings.ProgressDay = time.Wednesday

	candidates, err := ProgressStrategy{}.Evaluate(testProfile(), ContextSnapshot{}, settings, clock(18, 30))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, 0, candidates[0].Metadata["logged_days"])
}
