package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
	apperrors "github.com/vitalog/vitalog/pkg/errors"
)

// Default reminder configuration applied when a user has no settings row.
const (
	DefaultBreakfastTime          = "08:00"
	DefaultLunchTime              = "12:30"
	DefaultDinnerTime             = "19:00"
	DefaultExerciseTime           = "17:00"
	DefaultHydrationIntervalHours = 2
)

// NotificationSettingsDTO is the API payload for reminder preferences.
type NotificationSettingsDTO struct {
	UserID string `json:"user_id"`

	MealReminders      bool `json:"meal_reminders"`
	HydrationReminders bool `json:"hydration_reminders"`
	ExerciseReminders  bool `json:"exercise_reminders"`
	ProgressReminders  bool `json:"progress_reminders"`
	ActivityReminders  bool `json:"activity_reminders"`

	BreakfastTime string `json:"breakfast_time"`
	LunchTime     string `json:"lunch_time"`
	DinnerTime    string `json:"dinner_time"`

	HydrationIntervalHours int    `json:"hydration_interval_hours"`
	ExerciseTime           string `json:"exercise_time"`
	ProgressDay            int    `json:"progress_day"`

	ChannelInApp bool `json:"channel_in_app"`
	ChannelEmail bool `json:"channel_email"`
}

// UpdateNotificationSettingsInput carries a full replacement of the user's
// reminder preferences. The update is an idempotent upsert.
type UpdateNotificationSettingsInput struct {
	MealReminders      bool `json:"meal_reminders"`
	HydrationReminders bool `json:"hydration_reminders"`
	ExerciseReminders  bool `json:"exercise_reminders"`
	ProgressReminders  bool `json:"progress_reminders"`
	ActivityReminders  bool `json:"activity_reminders"`

	BreakfastTime string `json:"breakfast_time" validate:"required,hhmm"`
	LunchTime     string `json:"lunch_time" validate:"required,hhmm"`
	DinnerTime    string `json:"dinner_time" validate:"required,hhmm"`

	HydrationIntervalHours int    `json:"hydration_interval_hours" validate:"min=1,max=12"`
	ExerciseTime           string `json:"exercise_time" validate:"required,hhmm"`
	ProgressDay            int    `json:"progress_day" validate:"min=0,max=6"`

	ChannelInApp bool `json:"channel_in_app"`
	ChannelEmail bool `json:"channel_email"`
}

// SettingsService manages per-user reminder preferences and resolves them into
// the form the generation pipeline consumes.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(db *gorm.DB) (*SettingsService, error) {
	if db == nil {
		return nil, errors.New("settings service: db is required")
	}
	return &SettingsService{db: db}, nil
}

// Get returns the user's settings, substituting defaults when no row exists.
func (s *SettingsService) Get(ctx context.Context, userID string) (*NotificationSettingsDTO, error) {
	row, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := mapSettings(userID, row)
	return &dto, nil
}

// Update replaces the user's settings, creating the row on first write.
func (s *SettingsService) Update(ctx context.Context, userID string, input UpdateNotificationSettingsInput) (*NotificationSettingsDTO, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("settings service: user id is required")
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	values := map[string]any{
		"meal_reminders":           input.MealReminders,
		"hydration_reminders":      input.HydrationReminders,
		"exercise_reminders":       input.ExerciseReminders,
		"progress_reminders":       input.ProgressReminders,
		"activity_reminders":       input.ActivityReminders,
		"breakfast_time":           input.BreakfastTime,
		"lunch_time":               input.LunchTime,
		"dinner_time":              input.DinnerTime,
		"hydration_interval_hours": input.HydrationIntervalHours,
		"exercise_time":            input.ExerciseTime,
		"progress_day":             input.ProgressDay,
		"channel_in_app":           input.ChannelInApp,
		"channel_email":            input.ChannelEmail,
	}

	result := s.db.WithContext(ctx).
		Model(&models.NotificationSettings{}).
		Where("user_id = ?", userID).
		Updates(values)
	if result.Error != nil {
		return nil, fmt.Errorf("settings service: update settings: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		row := models.NotificationSettings{
			UserID:                 userID,
			MealReminders:          input.MealReminders,
			HydrationReminders:     input.HydrationReminders,
			ExerciseReminders:      input.ExerciseReminders,
			ProgressReminders:      input.ProgressReminders,
			ActivityReminders:      input.ActivityReminders,
			BreakfastTime:          input.BreakfastTime,
			LunchTime:              input.LunchTime,
			DinnerTime:             input.DinnerTime,
			HydrationIntervalHours: input.HydrationIntervalHours,
			ExerciseTime:           input.ExerciseTime,
			ProgressDay:            input.ProgressDay,
			ChannelInApp:           input.ChannelInApp,
			ChannelEmail:           input.ChannelEmail,
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			// Concurrent first writes race on the user_id unique index; the
			// losing writer retries as an update.
			if isUniqueConstraintError(err) {
				if retry := s.db.WithContext(ctx).
					Model(&models.NotificationSettings{}).
					Where("user_id = ?", userID).
					Updates(values); retry.Error != nil {
					return nil, fmt.Errorf("settings service: update settings: %w", retry.Error)
				}
			} else {
				return nil, fmt.Errorf("settings service: create settings: %w", err)
			}
		}
	}

	return s.Get(ctx, userID)
}

// Resolve returns the user's settings in the form the generation pipeline
// consumes, defaults already applied. It implements the scheduler's
// SettingsSource contract.
func (s *SettingsService) Resolve(ctx context.Context, userID string) (notify.Settings, error) {
	row, err := s.load(ctx, userID)
	if err != nil {
		return notify.Settings{}, err
	}

	resolved := row
	if resolved == nil {
		defaults := defaultSettings(userID)
		resolved = &defaults
	}

	return notify.Settings{
		MealReminders:      resolved.MealReminders,
		HydrationReminders: resolved.HydrationReminders,
		ExerciseReminders:  resolved.ExerciseReminders,
		ProgressReminders:  resolved.ProgressReminders,
		ActivityReminders:  resolved.ActivityReminders,
		MealTimes: []notify.MealTime{
			{Name: "breakfast", Clock: resolved.BreakfastTime},
			{Name: "lunch", Clock: resolved.LunchTime},
			{Name: "dinner", Clock: resolved.DinnerTime},
		},
		HydrationIntervalHours: resolved.HydrationIntervalHours,
		ExerciseTime:           resolved.ExerciseTime,
		ProgressDay:            time.Weekday(resolved.ProgressDay),
		ChannelInApp:           resolved.ChannelInApp,
		ChannelEmail:           resolved.ChannelEmail,
	}, nil
}

// load fetches the settings row, returning nil when the user has none.
func (s *SettingsService) load(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("settings service: user id is required")
	}

	var row models.NotificationSettings
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("settings service: load settings: %w", err)
	}
	return &row, nil
}

func validateUpdateInput(input UpdateNotificationSettingsInput) error {
	for field, value := range map[string]string{
		"breakfast_time": input.BreakfastTime,
		"lunch_time":     input.LunchTime,
		"dinner_time":    input.DinnerTime,
		"exercise_time":  input.ExerciseTime,
	} {
		if !validClock(value) {
			return apperrors.NewBadRequest(fmt.Sprintf("%s must be a valid HH:MM time", field))
		}
	}
	if input.HydrationIntervalHours < 1 || input.HydrationIntervalHours > 12 {
		return apperrors.NewBadRequest("hydration_interval_hours must be between 1 and 12")
	}
	if input.ProgressDay < 0 || input.ProgressDay > 6 {
		return apperrors.NewBadRequest("progress_day must be between 0 (Sunday) and 6 (Saturday)")
	}
	return nil
}

func validClock(value string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(value))
	return err == nil
}

func defaultSettings(userID string) models.NotificationSettings {
	return models.NotificationSettings{
		UserID:                 userID,
		MealReminders:          true,
		HydrationReminders:     true,
		ExerciseReminders:      true,
		ProgressReminders:      true,
		ActivityReminders:      true,
		BreakfastTime:          DefaultBreakfastTime,
		LunchTime:              DefaultLunchTime,
		DinnerTime:             DefaultDinnerTime,
		HydrationIntervalHours: DefaultHydrationIntervalHours,
		ExerciseTime:           DefaultExerciseTime,
		ProgressDay:            int(time.Sunday),
		ChannelInApp:           true,
		ChannelEmail:           false,
	}
}

func mapSettings(userID string, row *models.NotificationSettings) NotificationSettingsDTO {
	if row == nil {
		defaults := defaultSettings(userID)
		row = &defaults
	}
	return NotificationSettingsDTO{
		UserID:                 userID,
		MealReminders:          row.MealReminders,
		HydrationReminders:     row.HydrationReminders,
		ExerciseReminders:      row.ExerciseReminders,
		ProgressReminders:      row.ProgressReminders,
		ActivityReminders:      row.ActivityReminders,
		BreakfastTime:          row.BreakfastTime,
		LunchTime:              row.LunchTime,
		DinnerTime:             row.DinnerTime,
		HydrationIntervalHours: row.HydrationIntervalHours,
		ExerciseTime:           row.ExerciseTime,
		ProgressDay:            row.ProgressDay,
		ChannelInApp:           row.ChannelInApp,
		ChannelEmail:           row.ChannelEmail,
	}
}
