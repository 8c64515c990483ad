package router

import (
	"context"
	"net/http"

	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/internal/guard"
	"basegraph.app/forum/internal/http/handler"
	"basegraph.app/forum/internal/http/middleware"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	ReplyGuard guard.Guard
	Cleaner    sanitize.Cleaner
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		if cfg.Ready != nil {
			if err := cfg.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(services.Auth())
	optionalAuth := middleware.OptionalAuth(services.Auth())

	issueHandler := handler.NewIssueHandler(services.Issues(), cfg.Cleaner)
	replyHandler := handler.NewReplyHandler(services.Issues(), services.Replies(), cfg.ReplyGuard, cfg.Cleaner)
	subscriptionHandler := handler.NewSubscriptionHandler(services.Issues(), services.Subscriptions())

	IssueRouter(router.Group("/issues"), issueHandler, replyHandler, subscriptionHandler, requireAuth, optionalAuth)
	ReplyRouter(router.Group("/replies", requireAuth), replyHandler)

	router.GET("/categories", handler.NewCategoryHandler(services.Categories()).List)
	router.GET("/profiles/:name", handler.NewProfileHandler(services.Profiles()).Get)
	router.GET("/search", handler.NewSearchHandler(services.Search()).Search)

	NotificationRouter(router.Group("/notifications", requireAuth), handler.NewNotificationHandler(services.Notifications()))
}
