package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/database/testutil"
	apperrors "github.com/vitalog/vitalog/pkg/errors"
)

func validSettingsInput() UpdateNotificationSettingsInput {
	return UpdateNotificationSettingsInput{
		MealReminders:          true,
		HydrationReminders:     false,
		ExerciseReminders:      true,
		ProgressReminders:      true,
		ActivityReminders:      true,
		BreakfastTime:          "07:30",
		LunchTime:              "12:00",
		DinnerTime:             "19:30",
		HydrationIntervalHours: 3,
		ExerciseTime:           "06:45",
		ProgressDay:            3,
		ChannelInApp:           true,
		ChannelEmail:           true,
	}
}

func TestSettingsServiceGetReturnsDefaultsWithoutRow(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	dto, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, dto.MealReminders)
	require.True(t, dto.HydrationReminders)
	require.Equal(t, DefaultBreakfastTime, dto.BreakfastTime)
	require.Equal(t, DefaultDinnerTime, dto.DinnerTime)
	require.Equal(t, DefaultHydrationIntervalHours, dto.HydrationIntervalHours)
	require.Equal(t, int(time.Sunday), dto.ProgressDay)
	require.True(t, dto.ChannelInApp)
	require.False(t, dto.ChannelEmail, "email channel is opt-in")
}

func TestSettingsServiceUpdateUpserts(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	ctx := context.Background()
	input := validSettingsInput()

	first, err := svc.Update(ctx, "user-1", input)
	require.NoError(t, err)
	require.False(t, first.HydrationReminders)
	require.Equal(t, "07:30", first.BreakfastTime)
	require.Equal(t, 3, first.HydrationIntervalHours)

	input.BreakfastTime = "08:15"
	input.HydrationReminders = true
	second, err := svc.Update(ctx, "user-1", input)
	require.NoError(t, err)
	require.Equal(t, "08:15", second.BreakfastTime)
	require.True(t, second.HydrationReminders)

	third, err := svc.Update(ctx, "user-1", input)
	require.NoError(t, err, "repeating an update is idempotent")
	require.Equal(t, *second, *third)
}

func TestSettingsServiceUpdateRejectsMalformedTimes(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	input := validSettingsInput()
	input.DinnerTime = "25:00"

	_, err = svc.Update(context.Background(), "user-1", input)
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	require.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}

func TestSettingsServiceUpdateRejectsOutOfRangeValues(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	ctx := context.Background()

	input := validSettingsInput()
	input.HydrationIntervalHours = 0
	_, err = svc.Update(ctx, "user-1", input)
	require.Error(t, err)

	input = validSettingsInput()
	input.ProgressDay = 7
	_, err = svc.Update(ctx, "user-1", input)
	require.Error(t, err)
}

func TestSettingsServiceResolveAppliesDefaults(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, resolved.MealReminders)
	require.Len(t, resolved.MealTimes, 3)
	require.Equal(t, "breakfast", resolved.MealTimes[0].Name)
	require.Equal(t, DefaultBreakfastTime, resolved.MealTimes[0].Clock)
	require.Equal(t, "dinner", resolved.MealTimes[2].Name)
	require.Equal(t, time.Sunday, resolved.ProgressDay)
	require.True(t, resolved.ChannelInApp)
}

func TestSettingsServiceResolveUsesStoredRow(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	svc, err := NewSettingsService(db)
	require.NoError(t, err)

	ctx := context.Background()
	input := validSettingsInput()
	input.MealReminders = false
	input.ProgressDay = int(time.Friday)
	_, err = svc.Update(ctx, "user-1", input)
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, resolved.MealReminders)
	require.Equal(t, "07:30", resolved.MealTimes[0].Clock)
	require.Equal(t, time.Friday, resolved.ProgressDay)
	require.True(t, resolved.ChannelEmail)
}
