package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
	apperrors "github.com/vitalog/vitalog/pkg/errors"
)

// NotificationDTO represents the API-friendly notification payload.
type NotificationDTO struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	ScheduledTime time.Time      `json:"scheduled_time"`
	Status        string         `json:"status"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	SentTime      *time.Time     `json:"sent_time,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NotificationService owns the notification lifecycle: rows are created
// pending, advance to sent after a fully successful dispatch, and move to
// dismissed only by explicit user action. Rows are never deleted here;
// retention pruning is a maintenance policy.
type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

// NotificationServiceOption customises the NotificationService.
type NotificationServiceOption func(*NotificationService)

// WithNotificationClock overrides the clock, primarily for tests.
func WithNotificationClock(now func() time.Time) NotificationServiceOption {
	return func(s *NotificationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, opts ...NotificationServiceOption) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	s := &NotificationService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Persist stores a generated candidate as a pending notification.
func (s *NotificationService) Persist(ctx context.Context, userID string, candidate notify.Candidate) (*models.Notification, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}
	if strings.TrimSpace(candidate.Type) == "" {
		return nil, errors.New("notification service: type is required")
	}

	notification := models.Notification{
		UserID:        userID,
		Type:          candidate.Type,
		Title:         strings.TrimSpace(candidate.Title),
		Message:       strings.TrimSpace(candidate.Message),
		ScheduledTime: candidate.ScheduledTime,
		Status:        models.NotificationStatusPending,
	}
	if notification.ScheduledTime.IsZero() {
		notification.ScheduledTime = s.now().UTC()
	}

	if candidate.Metadata != nil {
		data, err := json.Marshal(candidate.Metadata)
		if err != nil {
			return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}
	return &notification, nil
}

// MarkSent advances a pending notification to sent and stamps the delivery
// time. Called only after every dispatched channel succeeded.
func (s *NotificationService) MarkSent(ctx context.Context, id string, at time.Time) error {
	ctx = ensureContext(ctx)
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()

	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND status = ?", id, models.NotificationStatusPending).
		Updates(map[string]any{
			"status":    models.NotificationStatusSent,
			"sent_time": at,
		})
	if result.Error != nil {
		return fmt.Errorf("notification service: mark sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Dismiss moves a notification owned by the user to the dismissed status.
// Dismissing an already-dismissed notification is a no-op.
func (s *NotificationService) Dismiss(ctx context.Context, userID, notificationID string) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	if notification.Status == models.NotificationStatusDismissed {
		dto := mapNotification(notification)
		return &dto, nil
	}

	now := s.now().UTC()
	if err := s.db.WithContext(ctx).Model(&notification).
		Updates(map[string]any{
			"status":    models.NotificationStatusDismissed,
			"sent_time": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("notification service: dismiss notification: %w", err)
	}

	notification.Status = models.NotificationStatusDismissed
	notification.SentTime = &now
	dto := mapNotification(notification)
	return &dto, nil
}

// ListPending returns the user's pending notifications ordered by scheduled
// time ascending.
func (s *NotificationService) ListPending(ctx context.Context, userID string) ([]NotificationDTO, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}

	var rows []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.NotificationStatusPending).
		Order("scheduled_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list pending: %w", err)
	}
	return mapNotificationRows(rows), nil
}

// ListHistory returns the user's notifications regardless of status, newest
// first, bounded by limit.
func (s *NotificationService) ListHistory(ctx context.Context, userID string, limit int) ([]NotificationDTO, error) {
	ctx = ensureContext(ctx)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("notification service: user id is required")
	}

	var rows []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(clampLimit(limit, 50, 200)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list history: %w", err)
	}
	return mapNotificationRows(rows), nil
}

// PruneDismissed removes dismissed notifications older than the cutoff and
// returns how many rows were deleted. Retention pruning is the only path that
// deletes notification rows.
func (s *NotificationService) PruneDismissed(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", models.NotificationStatusDismissed, cutoff.UTC()).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: prune dismissed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func mapNotificationRows(rows []models.Notification) []NotificationDTO {
	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items
}

func mapNotification(row models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:            row.ID,
		UserID:        row.UserID,
		Type:          row.Type,
		Title:         row.Title,
		Message:       row.Message,
		ScheduledTime: row.ScheduledTime,
		Status:        row.Status,
		Metadata:      decodeJSON(row.Metadata),
		SentTime:      row.SentTime,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func decodeJSON(data datatypes.JSON) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
