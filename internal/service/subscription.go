package service

import (
	"context"
	"fmt"
	"log/slog"

	"basegraph.app/forum/common/id"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/store"
)

// SubscriptionService is the ledger of who watches which issue. Callers always
// pass the user explicitly.
type SubscriptionService interface {
	Subscribe(ctx context.Context, issueID, userID int64) error
	Unsubscribe(ctx context.Context, issueID, userID int64) error
	IsSubscribed(ctx context.Context, issueID, userID int64) (bool, error)
	Subscribers(ctx context.Context, issueID int64) ([]int64, error)
}

type subscriptionService struct {
	subscriptions store.SubscriptionStore
}

func NewSubscriptionService(subscriptions store.SubscriptionStore) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions}
}

// Subscribe is idempotent: subscribing twice leaves one subscription.
func (s *subscriptionService) Subscribe(ctx context.Context, issueID, userID int64) error {
	sub := &model.Subscription{
		ID:      id.New(),
		IssueID: issueID,
		UserID:  userID,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		slog.ErrorContext(ctx, "failed to subscribe",
			"error", err,
			"issue_id", issueID,
			"user_id", userID)
		return fmt.Errorf("subscribing: %w", err)
	}
	return nil
}

// Unsubscribe succeeds when there was nothing to remove.
func (s *subscriptionService) Unsubscribe(ctx context.Context, issueID, userID int64) error {
	if err := s.subscriptions.Delete(ctx, issueID, userID); err != nil {
		return fmt.Errorf("unsubscribing: %w", err)
	}
	return nil
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, issueID, userID int64) (bool, error) {
	ok, err := s.subscriptions.Exists(ctx, issueID, userID)
	if err != nil {
		return false, fmt.Errorf("checking subscription: %w", err)
	}
	return ok, nil
}

func (s *subscriptionService) Subscribers(ctx context.Context, issueID int64) ([]int64, error) {
	ids, err := s.subscriptions.ListSubscriberIDs(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	return ids, nil
}
