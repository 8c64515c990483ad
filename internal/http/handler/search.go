package handler

import (
	"net/http"

	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 20

type SearchHandler struct {
	search service.SearchService
}

func NewSearchHandler(search service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	docs, err := h.search.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		respondError(c, err, "search")
		return
	}

	c.JSON(http.StatusOK, dto.ToSearchResponse(docs))
}
