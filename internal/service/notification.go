package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/forum/common/id"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/queue"
	"basegraph.app/forum/internal/store"
)

type NotificationService interface {
	// ListUnread returns the user's unread notifications, newest first.
	ListUnread(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	// DispatchReplyCreated notifies every subscriber of the reply's issue
	// except its author. It returns the number of notifications written.
	DispatchReplyCreated(ctx context.Context, event queue.EventMessage) (int, error)
}

type notificationService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewNotificationService(stores StoreProvider, txRunner TxRunner) NotificationService {
	return &notificationService{stores: stores, txRunner: txRunner}
}

func (s *notificationService) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	notifications, err := s.stores.Notifications().ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead only touches notifications addressed to userID; anything else
// reads as not found.
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if err := s.stores.Notifications().MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (s *notificationService) DispatchReplyCreated(ctx context.Context, event queue.EventMessage) (int, error) {
	if event.EventType != queue.EventTypeReplyCreated {
		return 0, fmt.Errorf("unexpected event type %q", event.EventType)
	}

	issue, err := s.stores.Issues().GetByID(ctx, event.IssueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// issue deleted before we got to it
			slog.InfoContext(ctx, "skipping notifications for missing issue", "issue_id", event.IssueID)
			return 0, nil
		}
		return 0, fmt.Errorf("fetching issue: %w", err)
	}

	author, err := s.stores.Users().GetByID(ctx, event.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("fetching reply author: %w", err)
	}

	subscriberIDs, err := s.stores.Subscriptions().ListSubscriberIDs(ctx, issue.ID)
	if err != nil {
		return 0, fmt.Errorf("listing subscribers: %w", err)
	}

	message := fmt.Sprintf("%s replied to %s", author.Name, issue.Summary)

	sent := 0
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		for _, userID := range subscriberIDs {
			if userID == event.AuthorID {
				continue
			}
			n := &model.Notification{
				ID:      id.New(),
				UserID:  userID,
				ActorID: event.AuthorID,
				IssueID: issue.ID,
				ReplyID: event.ReplyID,
				Message: message,
			}
			if err := sp.Notifications().Create(ctx, n); err != nil {
				return fmt.Errorf("creating notification for user %d: %w", userID, err)
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}
