package store

import (
	"context"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
)

type subscriptionStore struct {
	queries *sqlc.Queries
}

func newSubscriptionStore(queries *sqlc.Queries) SubscriptionStore {
	return &subscriptionStore{queries: queries}
}

func (s *subscriptionStore) Create(ctx context.Context, sub *model.Subscription) error {
	return s.queries.CreateSubscription(ctx, sqlc.CreateSubscriptionParams{
		ID:      sub.ID,
		IssueID: sub.IssueID,
		UserID:  sub.UserID,
	})
}

func (s *subscriptionStore) Delete(ctx context.Context, issueID, userID int64) error {
	return s.queries.DeleteSubscription(ctx, sqlc.DeleteSubscriptionParams{
		IssueID: issueID,
		UserID:  userID,
	})
}

func (s *subscriptionStore) Exists(ctx context.Context, issueID, userID int64) (bool, error) {
	return s.queries.SubscriptionExists(ctx, sqlc.SubscriptionExistsParams{
		IssueID: issueID,
		UserID:  userID,
	})
}

func (s *subscriptionStore) ListSubscriberIDs(ctx context.Context, issueID int64) ([]int64, error) {
	return s.queries.ListSubscriberIDs(ctx, issueID)
}

func (s *subscriptionStore) DeleteByIssue(ctx context.Context, issueID int64) error {
	return s.queries.DeleteSubscriptionsByIssue(ctx, issueID)
}
