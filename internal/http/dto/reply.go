package dto

import (
	"time"

	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/internal/model"
)

type ReplyRequest struct {
	Body string `json:"body"`
}

type ReplyResponse struct {
	ID        int64     `json:"id,string"`
	IssueID   int64     `json:"issue_id,string"`
	UserID    int64     `json:"user_id,string"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToReplyResponse(r *model.Reply, cleaner sanitize.Cleaner) ReplyResponse {
	return ReplyResponse{
		ID:        r.ID,
		IssueID:   r.IssueID,
		UserID:    r.UserID,
		Body:      cleaner.Clean(r.Body),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToReplyListResponse(replies []model.Reply, cleaner sanitize.Cleaner) ListResponse[ReplyResponse] {
	out := make([]ReplyResponse, len(replies))
	for i := range replies {
		out[i] = ToReplyResponse(&replies[i], cleaner)
	}
	return ListResponse[ReplyResponse]{Data: out}
}
