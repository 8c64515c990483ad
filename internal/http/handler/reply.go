package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/internal/guard"
	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	issues  service.IssueService
	replies service.ReplyService
	guard   guard.Guard
	cleaner sanitize.Cleaner
}

func NewReplyHandler(issues service.IssueService, replies service.ReplyService, g guard.Guard, cleaner sanitize.Cleaner) *ReplyHandler {
	return &ReplyHandler{
		issues:  issues,
		replies: replies,
		guard:   g,
		cleaner: cleaner,
	}
}

func (h *ReplyHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "list replies")
		return
	}

	replies, err := h.replies.List(ctx, view.Issue.ID)
	if err != nil {
		respondError(c, err, "list replies")
		return
	}

	c.JSON(http.StatusOK, dto.ToReplyListResponse(replies, h.cleaner))
}

// Create runs validation, then the guard chain, then stores the reply. A reply
// that fails before it is stored hands its throttle slot back.
func (h *ReplyHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.issues.Get(ctx, c.Param("category"), c.Param("slug"))
	if err != nil {
		respondError(c, err, "add reply")
		return
	}

	if err := service.ValidateReplyBody(req.Body); err != nil {
		respondError(c, err, "add reply")
		return
	}
	if view.Issue.Locked {
		respondError(c, service.ErrIssueLocked, "add reply")
		return
	}

	attempt := guard.ReplyAttempt{
		UserID:  user.ID,
		IssueID: view.Issue.ID,
		Body:    req.Body,
	}
	if err := h.guard.Check(ctx, attempt); err != nil {
		respondError(c, err, "add reply")
		return
	}

	reply, err := h.replies.Add(ctx, view.Issue, service.AddReplyParams{UserID: user.ID, Body: req.Body})
	if err != nil {
		// A stored reply keeps its slot even if the event was lost.
		if !errors.Is(err, service.ErrEventNotPublished) {
			if relErr := guard.Release(ctx, h.guard, attempt); relErr != nil {
				slog.WarnContext(ctx, "failed to release reply throttle", "error", relErr)
			}
		}
		respondError(c, err, "add reply")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReplyResponse(reply, h.cleaner))
}

func (h *ReplyHandler) Update(c *gin.Context) {
	replyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.replies.Update(c.Request.Context(), replyID, currentUser(c).ID, req.Body)
	if err != nil {
		respondError(c, err, "update reply")
		return
	}

	c.JSON(http.StatusOK, dto.ToReplyResponse(reply, h.cleaner))
}

func (h *ReplyHandler) Delete(c *gin.Context) {
	replyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.replies.Delete(c.Request.Context(), replyID, currentUser(c).ID); err != nil {
		respondError(c, err, "delete reply")
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkBest accepts the reply as the answer to its issue.
func (h *ReplyHandler) MarkBest(c *gin.Context) {
	ctx := c.Request.Context()

	replyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reply, err := h.replies.Get(ctx, replyID)
	if err != nil {
		respondError(c, err, "mark best reply")
		return
	}

	view, err := h.issues.MarkBestReply(ctx, reply.IssueID, reply.ID, currentUser(c).ID)
	if err != nil {
		respondError(c, err, "mark best reply")
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueResponse(view, h.cleaner))
}
