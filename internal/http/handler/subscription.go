package handler

import (
	"net/http"

	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	issues        service.IssueService
	subscriptions service.SubscriptionService
}

func NewSubscriptionHandler(issues service.IssueService, subscriptions service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{issues: issues, subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "subscribe")
		return
	}

	if err := h.subscriptions.Subscribe(ctx, view.Issue.ID, currentUser(c).ID); err != nil {
		respondError(c, err, "subscribe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"is_subscribed_to": true})
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "unsubscribe")
		return
	}

	if err := h.subscriptions.Unsubscribe(ctx, view.Issue.ID, currentUser(c).ID); err != nil {
		respondError(c, err, "unsubscribe")
		return
	}

	c.Status(http.StatusNoContent)
}
