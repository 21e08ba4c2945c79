package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/pkg/response"
)

// Health returns a readiness payload covering the database and the scheduler.
func Health(db *gorm.DB, scheduler *notify.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := gin.H{"status": "ok"}

		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(requestContext(c)) != nil {
				payload["status"] = "degraded"
				payload["database"] = "unreachable"
			} else {
				payload["database"] = "ok"
			}
		}

		if scheduler != nil {
			payload["scheduler_running"] = scheduler.Running()
			if next := scheduler.NextRun(); !next.IsZero() {
				payload["next_run"] = next.UTC().Format(time.RFC3339)
			}
		}

		response.Success(c, http.StatusOK, payload)
	}
}
