package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/services"
	"github.com/vitalog/vitalog/pkg/errors"
	"github.com/vitalog/vitalog/pkg/response"
)

// SettingsHandler exposes HTTP endpoints for reminder preferences.
type SettingsHandler struct {
	settings *services.SettingsService
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(db *gorm.DB) (*SettingsHandler, error) {
	settings, err := services.NewSettingsService(db)
	if err != nil {
		return nil, err
	}
	return &SettingsHandler{settings: settings}, nil
}

// Get returns the user's reminder preferences, defaults applied.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	dto, err := h.settings.Get(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}

// Update replaces the user's reminder preferences. The operation is an
// idempotent upsert.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID := userIDParam(c)
	if userID == "" {
		response.Error(c, errors.NewBadRequest("user id is required"))
		return
	}

	var payload services.UpdateNotificationSettingsInput
	if !bindAndValidate(c, &payload) {
		return
	}

	dto, err := h.settings.Update(requestContext(c), userID, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}
