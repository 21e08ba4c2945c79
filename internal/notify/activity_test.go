package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityStrategyFiresAtFifteenMinutes(t *testing.T) {
	now := clock(10, 0)
	snapshot := ContextSnapshot{
		UpcomingActivities: []UpcomingActivity{{
			ID:             "act-1",
			Title:          "Group Run",
			Type:           "run",
			ScheduledStart: now.Add(15 * time.Minute),
			IsJoined:       false,
		}},
	}

	candidates, err := ActivityStrategy{}.Evaluate(testProfile(), snapshot, testSettings(), now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Contains(t, candidates[0].Message, "Join now", "not-joined wording encourages joining")
	require.Equal(t, 15, candidates[0].Metadata["minutes_until_start"])
}

func TestActivityStrategySilentAtFourteenOrSixteenMinutes(t *testing.T) {
	now := clock(10, 0)
	for _, offset := range []time.Duration{14 * time.Minute, 16 * time.Minute} {
		snapshot := ContextSnapshot{
			UpcomingActivities: []UpcomingActivity{{
				ID:             "act-1",
				Title:          "Group Run",
				ScheduledStart: now.Add(offset),
			}},
		}

		candidates, err := ActivityStrategy{}.Evaluate(testProfile(), snapshot, testSettings(), now)
		require.NoError(t, err)
		require.Empty(t, candidates, "offset %v", offset)
	}
}

func TestActivityStrategyStartingNowWording(t *testing.T) {
	now := clock(10, 0)
	snapshot := ContextSnapshot{
		UpcomingActivities: []UpcomingActivity{{
			ID:             "act-2",
			Title:          "Yoga Class",
			ScheduledStart: now,
			IsJoined:       true,
		}},
	}

	candidates, err := ActivityStrategy{}.Evaluate(testProfile(), snapshot, testSettings(), now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Contains(t, candidates[0].Title, "starting now")
	require.Contains(t, candidates[0].Message, "Jump in")
}

func TestActivityStrategyMayEmitMultipleCandidates(t *testing.T) {
	now := clock(10, 0)
	snapshot := ContextSnapshot{
		UpcomingActivities: []UpcomingActivity{
			{ID: "act-1", Title: "Group Run", ScheduledStart: now.Add(15 * time.Minute)},
			{ID: "act-2", Title: "Yoga Class", ScheduledStart: now},
			{ID: "act-3", Title: "Spin", ScheduledStart: now.Add(45 * time.Minute)},
		},
	}

	candidates, err := ActivityStrategy{}.Evaluate(testProfile(), snapshot, testSettings(), now)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
}

func TestActivityStrategyAlwaysReturnsSlice(t *testing.T) {
	candidates, err := ActivityStrategy{}.Evaluate(testProfile(), ContextSnapshot{}, testSettings(), clock(10, 0))
	require.NoError(t, err)
	require.NotNil(t, candidates)
	require.Empty(t, candidates)
}
