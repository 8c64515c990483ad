package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	issues  service.IssueService
	cleaner sanitize.Cleaner
}

func NewIssueHandler(issues service.IssueService, cleaner sanitize.Cleaner) *IssueHandler {
	return &IssueHandler{issues: issues, cleaner: cleaner}
}

func (h *IssueHandler) List(c *gin.Context) {
	params := service.ListIssuesParams{
		CategorySlug: c.Param("category"),
		By:           c.Query("by"),
		Popular:      queryFlag(c, "popular"),
		Unanswered:   queryFlag(c, "unanswered"),
		ViewerID:     viewerID(c),
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 100 {
			params.Limit = int32(limit)
		}
	}

	views, err := h.issues.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list issues")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueListResponse(views, h.cleaner))
}

func (h *IssueHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.issues.Create(ctx, service.CreateIssueParams{
		CreatorID:   currentUser(c).ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "create issue")
		return
	}

	c.Header("Location", view.Path())
	c.JSON(http.StatusCreated, dto.ToIssueResponse(view, h.cleaner))
}

func (h *IssueHandler) Show(c *gin.Context) {
	view, err := h.issues.Show(c.Request.Context(), c.Param("category"), c.Param("slug"), viewerID(c))
	if err != nil {
		respondError(c, err, "load issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(view, h.cleaner))
}

func (h *IssueHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "update issue")
		return
	}

	view, err := h.issues.Update(ctx, existing.Issue.ID, currentUser(c).ID, service.UpdateIssueParams{
		Summary:     req.Summary,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "update issue")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(view, h.cleaner))
}

func (h *IssueHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "delete issue")
		return
	}

	if err := h.issues.Delete(ctx, view.Issue.ID, currentUser(c).ID); err != nil {
		respondError(c, err, "delete issue")
		return
	}

	c.Status(http.StatusNoContent)
}
