package store

import (
	"context"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	row, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:      n.ID,
		UserID:  n.UserID,
		ActorID: n.ActorID,
		IssueID: n.IssueID,
		ReplyID: n.ReplyID,
		Message: n.Message,
	})
	if err != nil {
		return err
	}
	*n = toNotificationModel(row)
	return nil
}

func (s *notificationStore) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	rows, err := s.queries.ListUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Notification, len(rows))
	for i, row := range rows {
		out[i] = toNotificationModel(row)
	}
	return out, nil
}

// MarkRead is idempotent for the owner; ErrNotFound covers both unknown ids and
// notifications addressed to someone else.
func (s *notificationStore) MarkRead(ctx context.Context, id, userID int64) error {
	n, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toNotificationModel(row sqlc.Notification) model.Notification {
	return model.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		ActorID:   row.ActorID,
		IssueID:   row.IssueID,
		ReplyID:   row.ReplyID,
		Message:   row.Message,
		ReadAt:    timePtr(row.ReadAt.Time, row.ReadAt.Valid),
		CreatedAt: row.CreatedAt.Time,
	}
}
