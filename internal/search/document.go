// Package search keeps the issue search index in step with the database.
package search

import (
	"strconv"

	"basegraph.app/forum/internal/model"
)

// Document is the flattened, denormalized form of an issue stored in the index.
type Document struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description"`
	CategoryID   int64   `json:"category_id"`
	CategorySlug string  `json:"category_slug"`
	CategoryName string  `json:"category_name"`
	CreatorID    int64   `json:"creator_id"`
	RepliesCount int32   `json:"replies_count"`
	Visits       int64   `json:"visits"`
	BestReplyID  *string `json:"best_reply_id,omitempty"`
	Answered     bool    `json:"answered"` // best_reply_id is set
	Locked       bool    `json:"locked"`
	CreatedAt    int64   `json:"created_at"` // unix seconds
	UpdatedAt    int64   `json:"updated_at"`
	Path         string  `json:"path"`
}

// ToDocument projects an issue and its category into a search document.
func ToDocument(issue *model.Issue, category *model.Category) Document {
	var bestReplyID *string
	if issue.BestReplyID != nil {
		id := strconv.FormatInt(*issue.BestReplyID, 10)
		bestReplyID = &id
	}
	return Document{
		ID:           strconv.FormatInt(issue.ID, 10),
		Title:        issue.Title,
		Slug:         issue.Slug,
		Summary:      issue.Summary,
		Description:  issue.Description,
		CategoryID:   category.ID,
		CategorySlug: category.Slug,
		CategoryName: category.Name,
		CreatorID:    issue.CreatorID,
		RepliesCount: issue.RepliesCount,
		Visits:       issue.Visits,
		BestReplyID:  bestReplyID,
		Answered:     issue.IsAnswered(),
		Locked:       issue.Locked,
		CreatedAt:    issue.CreatedAt.Unix(),
		UpdatedAt:    issue.UpdatedAt.Unix(),
		Path:         issue.Path(category.Slug),
	}
}
