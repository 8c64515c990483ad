package router

import (
	"basegraph.app/forum/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// IssueRouter mounts issues and everything addressed by an issue path.
// Reads are public; the viewer is attached when a session exists.
func IssueRouter(
	rg *gin.RouterGroup,
	issues *handler.IssueHandler,
	replies *handler.ReplyHandler,
	subscriptions *handler.SubscriptionHandler,
	requireAuth, optionalAuth gin.HandlerFunc,
) {
	rg.GET("", optionalAuth, issues.List)
	rg.GET("/:category", optionalAuth, issues.List)
	rg.GET("/:category/:slug", optionalAuth, issues.Show)
	rg.GET("/:category/:slug/replies", replies.List)

	authed := rg.Group("", requireAuth)
	{
		authed.POST("", issues.Create)
		authed.PATCH("/:category/:slug", issues.Update)
		authed.DELETE("/:category/:slug", issues.Delete)
		authed.POST("/:category/:slug/replies", replies.Create)
		authed.POST("/:category/:slug/subscriptions", subscriptions.Subscribe)
		authed.DELETE("/:category/:slug/subscriptions", subscriptions.Unsubscribe)
	}
}
