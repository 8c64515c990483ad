package handler

import (
	"net/http"

	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}
