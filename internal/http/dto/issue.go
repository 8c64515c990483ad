package dto

import (
	"time"

	"basegraph.app/forum/common/sanitize"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/service"
)

type CreateIssueRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Summary     string `json:"summary" binding:"max=255"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
}

type UpdateIssueRequest struct {
	Summary     string `json:"summary" binding:"max=255"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func ToCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
}

func ToCategoryListResponse(categories []model.Category) ListResponse[CategoryResponse] {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return ListResponse[CategoryResponse]{Data: out}
}

type IssueResponse struct {
	ID             int64            `json:"id,string"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	Summary        string           `json:"summary"`
	Description    string           `json:"description"`
	Path           string           `json:"path"`
	Category       CategoryResponse `json:"category"`
	CreatorID      int64            `json:"creator_id,string"`
	BestReplyID    *int64           `json:"best_reply_id,string,omitempty"`
	RepliesCount   int32            `json:"replies_count"`
	Visits         int64            `json:"visits"`
	Locked         bool             `json:"locked"`
	IsSubscribedTo bool             `json:"is_subscribed_to"`
	HasUpdate      bool             `json:"has_update"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToIssueResponse renders the description through cleaner; it is stored as typed.
func ToIssueResponse(v *service.IssueView, cleaner sanitize.Cleaner) IssueResponse {
	return IssueResponse{
		ID:             v.Issue.ID,
		Title:          v.Issue.Title,
		Slug:           v.Issue.Slug,
		Summary:        v.Issue.Summary,
		Description:    cleaner.Clean(v.Issue.Description),
		Path:           v.Path(),
		Category:       ToCategoryResponse(v.Category),
		CreatorID:      v.Issue.CreatorID,
		BestReplyID:    v.Issue.BestReplyID,
		RepliesCount:   v.Issue.RepliesCount,
		Visits:         v.Issue.Visits,
		Locked:         v.Issue.Locked,
		IsSubscribedTo: v.IsSubscribed,
		HasUpdate:      v.HasUpdate,
		CreatedAt:      v.Issue.CreatedAt,
		UpdatedAt:      v.Issue.UpdatedAt,
	}
}

func ToIssueListResponse(views []service.IssueView, cleaner sanitize.Cleaner) ListResponse[IssueResponse] {
	out := make([]IssueResponse, len(views))
	for i := range views {
		out[i] = ToIssueResponse(&views[i], cleaner)
	}
	return ListResponse[IssueResponse]{Data: out}
}

// ListResponse is the envelope of every collection endpoint.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}
