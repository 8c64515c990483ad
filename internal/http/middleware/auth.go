package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"basegraph.app/forum/common/logger"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	SessionCookieName              = "forum_session"
	SessionIDHeader                = "X-Session-ID"
	LoginPath                      = "/login"
	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

// RequireAuth aborts requests without a valid session. Browsers are sent to
// the login page; JSON clients get a 401.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := getSessionID(c)
		if err != nil {
			rejectUnauthenticated(c, "not authenticated")
			return
		}

		user, _, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				clearSessionCookie(c)
				rejectUnauthenticated(c, "session expired")
				return
			}
			slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		attachUser(c, user, sessionID)
		c.Next()
	}
}

// OptionalAuth attaches the user to context if a valid session exists, but never aborts.
// Use for routes that work for both guests and authenticated users.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := getSessionID(c)
		if err != nil {
			c.Next()
			return
		}

		user, _, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			c.Next()
			return
		}

		attachUser(c, user, sessionID)
		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

// WantsJSON reports whether the client asked for JSON rather than a page.
func WantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func attachUser(c *gin.Context, user *model.User, sessionID int64) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	c.Request = c.Request.WithContext(ctx)
}

func rejectUnauthenticated(c *gin.Context, reason string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason})
		return
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

func getSessionID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return 0, err
		}
		raw = cookie
	}
	return strconv.ParseInt(raw, 10, 64)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}
