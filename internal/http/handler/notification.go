package handler

import (
	"net/http"

	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.ListUnread(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err, "list notifications")
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications))
}

// MarkRead answers DELETE: a read notification leaves the unread list.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), notificationID, currentUser(c).ID); err != nil {
		respondError(c, err, "mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}
