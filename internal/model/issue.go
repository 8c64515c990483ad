package model

import (
	"errors"
	"time"
)

var ErrReplyNotOnIssue = errors.New("reply does not belong to issue")

type Issue struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CreatorID    int64     `json:"creator_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"` // stored raw; sanitize before rendering
	BestReplyID  *int64    `json:"best_reply_id,omitempty"`
	RepliesCount int32     `json:"replies_count"`
	Visits       int64     `json:"visits"`
	Locked       bool      `json:"locked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Path is the canonical URL path of the issue: /issues/{categorySlug}/{issueSlug}.
func (i *Issue) Path(categorySlug string) string {
	return "/issues/" + categorySlug + "/" + i.Slug
}

// HasUpdateSince reports whether the issue changed after lastSeen. A zero
// watermark (never visited) always counts as an update.
func (i *Issue) HasUpdateSince(lastSeen time.Time) bool {
	if lastSeen.IsZero() {
		return true
	}
	return i.UpdatedAt.After(lastSeen)
}

// MarkBestReply records reply as the accepted answer.
func (i *Issue) MarkBestReply(reply *Reply) error {
	if reply.IssueID != i.ID {
		return ErrReplyNotOnIssue
	}
	i.BestReplyID = &reply.ID
	return nil
}

func (i *Issue) IsAnswered() bool {
	return i.BestReplyID != nil
}

// IssueFilter narrows an issue listing. Nil ids mean "any".
type IssueFilter struct {
	CategoryID *int64
	CreatorID  *int64
	Popular    bool // replies_count desc, then newest
	Unanswered bool // replies_count = 0
	Limit      int32
}
