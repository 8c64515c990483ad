package model

import "time"

type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"` // recipient
	ActorID   int64      `json:"actor_id"`
	IssueID   int64      `json:"issue_id"`
	ReplyID   int64      `json:"reply_id"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
