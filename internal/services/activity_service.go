package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
)

// ActivityService reads scheduled live activities and the user's join state.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService constructs an ActivityService.
func NewActivityService(db *gorm.DB) (*ActivityService, error) {
	if db == nil {
		return nil, errors.New("activity service: db is required")
	}
	return &ActivityService{db: db}, nil
}

// Upcoming returns activities starting within [from, to] ordered by start
// time, flagging the ones the user has joined.
func (s *ActivityService) Upcoming(ctx context.Context, userID string, from, to time.Time) ([]notify.UpcomingActivity, error) {
	ctx = ensureContext(ctx)

	var rows []models.Activity
	if err := s.db.WithContext(ctx).
		Where("scheduled_start >= ? AND scheduled_start <= ?", from, to).
		Order("scheduled_start ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("activity service: list upcoming: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var joins []models.ActivityParticipant
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND activity_id IN ?", userID, ids).
		Find(&joins).Error; err != nil {
		return nil, fmt.Errorf("activity service: list participants: %w", err)
	}

	joined := make(map[string]struct{}, len(joins))
	for _, join := range joins {
		joined[join.ActivityID] = struct{}{}
	}

	upcoming := make([]notify.UpcomingActivity, 0, len(rows))
	for _, row := range rows {
		_, isJoined := joined[row.ID]
		upcoming = append(upcoming, notify.UpcomingActivity{
			ID:             row.ID,
			Title:          row.Title,
			Type:           row.Type,
			ScheduledStart: row.ScheduledStart,
			HostEmail:      row.HostEmail,
			IsJoined:       isJoined,
		})
	}
	return upcoming, nil
}
