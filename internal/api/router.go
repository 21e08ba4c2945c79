package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/handlers"
	"github.com/vitalog/vitalog/internal/middleware"
	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/internal/realtime"
)

// NewRouter builds the Gin engine, wires middleware and registers routes.
// Identity is supplied by an upstream gateway through the user id path
// segment; this service performs no authentication of its own.
func NewRouter(db *gorm.DB, scheduler *notify.Scheduler, dispatcher *notify.Dispatcher, hub *realtime.Hub) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler must be provided")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Health endpoint (public)
	r.GET("/health", handlers.Health(db, scheduler))

	notificationHandler, err := handlers.NewNotificationHandler(db, scheduler, dispatcher, hub)
	if err != nil {
		return nil, err
	}
	settingsHandler, err := handlers.NewSettingsHandler(db)
	if err != nil {
		return nil, err
	}

	user := r.Group("/api/users/:id")
	{
		user.GET("/notification-settings", settingsHandler.Get)
		user.PUT("/notification-settings", settingsHandler.Update)

		user.GET("/notifications", notificationHandler.ListPending)
		user.GET("/notifications/history", notificationHandler.History)
		user.POST("/notifications/:notificationID/dismiss", notificationHandler.Dismiss)
		user.POST("/notifications/generate", notificationHandler.Generate)
		user.POST("/notifications/test", notificationHandler.CreateTest)
		user.GET("/notifications/stream", notificationHandler.Stream)
	}

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
