package store

import (
	"context"
	"errors"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
	"github.com/jackc/pgx/v5"
)

type replyStore struct {
	queries *sqlc.Queries
}

func newReplyStore(queries *sqlc.Queries) ReplyStore {
	return &replyStore{queries: queries}
}

func (s *replyStore) Create(ctx context.Context, reply *model.Reply) error {
	row, err := s.queries.CreateReply(ctx, sqlc.CreateReplyParams{
		ID:      reply.ID,
		IssueID: reply.IssueID,
		UserID:  reply.UserID,
		Body:    reply.Body,
	})
	if err != nil {
		return err
	}
	*reply = *toReplyModel(row)
	return nil
}

func (s *replyStore) GetByID(ctx context.Context, id int64) (*model.Reply, error) {
	row, err := s.queries.GetReply(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toReplyModel(row), nil
}

func (s *replyStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Reply, error) {
	rows, err := s.queries.ListRepliesByIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	replies := make([]model.Reply, len(rows))
	for i, row := range rows {
		replies[i] = *toReplyModel(row)
	}
	return replies, nil
}

func (s *replyStore) UpdateBody(ctx context.Context, id int64, body string) (*model.Reply, error) {
	row, err := s.queries.UpdateReplyBody(ctx, sqlc.UpdateReplyBodyParams{ID: id, Body: body})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toReplyModel(row), nil
}

func (s *replyStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteReply(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toReplyModel(row sqlc.Reply) *model.Reply {
	return &model.Reply{
		ID:        row.ID,
		IssueID:   row.IssueID,
		UserID:    row.UserID,
		Body:      row.Body,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
