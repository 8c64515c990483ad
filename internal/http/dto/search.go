package dto

import "basegraph.app/forum/internal/search"

type SearchRequest struct {
	Query string `form:"q" binding:"required,max=200"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SearchHit struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	CategorySlug string `json:"category_slug"`
	RepliesCount int32  `json:"replies_count"`
	Path         string `json:"path"`
}

func ToSearchResponse(docs []search.Document) ListResponse[SearchHit] {
	out := make([]SearchHit, len(docs))
	for i, d := range docs {
		out[i] = SearchHit{
			ID:           d.ID,
			Title:        d.Title,
			Summary:      d.Summary,
			CategorySlug: d.CategorySlug,
			RepliesCount: d.RepliesCount,
			Path:         d.Path,
		}
	}
	return ListResponse[SearchHit]{Data: out}
}
