package dto

import (
	"time"

	"basegraph.app/forum/internal/model"
)

type NotificationResponse struct {
	ID        int64     `json:"id,string"`
	ActorID   int64     `json:"actor_id,string"`
	IssueID   int64     `json:"issue_id,string"`
	ReplyID   int64     `json:"reply_id,string"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ToNotificationListResponse(notifications []model.Notification) ListResponse[NotificationResponse] {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			ID:        n.ID,
			ActorID:   n.ActorID,
			IssueID:   n.IssueID,
			ReplyID:   n.ReplyID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	}
	return ListResponse[NotificationResponse]{Data: out}
}
