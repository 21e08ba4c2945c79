package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// userIDParam extracts the path user id. Identity verification happens at the
// upstream gateway; this service trusts the routed id.
func userIDParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
