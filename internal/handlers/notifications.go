package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/internal/realtime"
	"github.com/vitalog/vitalog/internal/services"
	"github.com/vitalog/vitalog/pkg/errors"
	"github.com/vitalog/vitalog/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for reminders and their lifecycle.
type NotificationHandler struct {
	notifications *services.NotificationService
	settings      *services.SettingsService
	users         *services.UserService
	scheduler     *notify.Scheduler
	dispatcher    *notify.Dispatcher
	hub           *realtime.Hub
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(db *gorm.DB, scheduler *notify.Scheduler, dispatcher *notify.Dispatcher, hub *realtime.Hub) (*NotificationHandler, error) {
	notifications, err := services.NewNotificationService(db)
	if err != nil {
		return nil, err
	}
	settings, err := services.NewSettingsService(db)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	return &NotificationHandler{
		notifications: notifications,
		settings:      settings,
		users:         users,
		scheduler:     scheduler,
		dispatcher:    dispatcher,
		hub:           hub,
	}, nil
}

// ListPending returns the user's pending notifications, soonest first.
func (h *NotificationHandler) ListPending(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	items, err := h.notifications.ListPending(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// History returns the user's notification history, newest first.
func (h *NotificationHandler) History(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	limit := parseIntQuery(c, "limit", 50)
	items, err := h.notifications.ListHistory(requestContext(c), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Limit: limit,
		Total: len(items),
	})
}

// Dismiss moves a notification to the dismissed status.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	userID := userIDParam(c)
	notificationID := strings.TrimSpace(c.Param("notificationID"))
	if userID == "" || notificationID == "" {
		response.Error(c, errors.NewBadRequest("user id and notification id are required"))
		return
	}

	dto, err := h.notifications.Dismiss(requestContext(c), userID, notificationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Generate runs the full reminder pipeline for one user outside the scheduled
// tick.
func (h *NotificationHandler) Generate(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}
	if h.scheduler == nil {
		response.Error(c, errors.ErrInternalServer)
		return
	}

	ctx := requestContext(c)
	profile, err := h.users.GetProfile(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.scheduler.RunUser(ctx, profile); err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.notifications.ListPending(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// CreateTest injects a notification directly, bypassing the strategies, and
// dispatches it over the user's enabled channels.
func (h *NotificationHandler) CreateTest(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	var payload struct {
		Title   string `json:"title" validate:"required,max=255"`
		Message string `json:"message" validate:"max=2000"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	ctx := requestContext(c)
	profile, err := h.users.GetProfile(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	notification, err := h.notifications.Persist(ctx, userID, notify.Candidate{
		Type:          models.NotificationTypeTest,
		Title:         payload.Title,
		Message:       payload.Message,
		ScheduledTime: time.Now().UTC(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	var results []notify.ChannelResult
	if h.dispatcher != nil {
		resolved, err := h.settings.Resolve(ctx, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		results = h.dispatcher.Dispatch(ctx, profile, notification, resolved)

		delivered := len(results) > 0
		for _, result := range results {
			if !result.OK {
				delivered = false
				break
			}
		}
		if delivered {
			if err := h.notifications.MarkSent(ctx, notification.ID, time.Now()); err != nil {
				response.Error(c, err)
				return
			}
		}
	}

	response.Success(c, http.StatusCreated, gin.H{
		"notification": notification,
		"results":      results,
	})
}

// Stream upgrades the connection to a websocket carrying the user's created
// notifications.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	h.hub.Serve(userID, c.Writer, c.Request)
}
