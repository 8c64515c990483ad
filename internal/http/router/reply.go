package router

import (
	"basegraph.app/forum/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ReplyRouter(rg *gin.RouterGroup, h *handler.ReplyHandler) {
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/best", h.MarkBest)
}

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("", h.List)
	rg.DELETE("/:id", h.MarkRead)
}
