package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"basegraph.app/forum/internal/guard"
	"basegraph.app/forum/internal/http/middleware"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported as "failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, guard.ErrSpam):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Your reply contains spam."})
	case errors.Is(err, service.ErrIssueLocked):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "issue is locked"})
	case errors.Is(err, guard.ErrThrottled):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "You are replying too frequently. Please take a break."})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, search.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not available"})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err, "action", action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// currentUser is only nil on routes without RequireAuth.
func currentUser(c *gin.Context) *model.User {
	return middleware.GetUser(c.Request.Context())
}

func viewerID(c *gin.Context) *int64 {
	if user := currentUser(c); user != nil {
		return &user.ID
	}
	return nil
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func queryFlag(c *gin.Context, name string) bool {
	switch c.Query(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
