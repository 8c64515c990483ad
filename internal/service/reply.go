package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"basegraph.app/forum/common/id"
	"basegraph.app/forum/common/logger"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/queue"
	"basegraph.app/forum/internal/store"
)

type AddReplyParams struct {
	UserID int64
	Body   string
}

type ReplyService interface {
	Add(ctx context.Context, issue *model.Issue, params AddReplyParams) (*model.Reply, error)
	Get(ctx context.Context, replyID int64) (*model.Reply, error)
	List(ctx context.Context, issueID int64) ([]model.Reply, error)
	Update(ctx context.Context, replyID, actorID int64, body string) (*model.Reply, error)
	Delete(ctx context.Context, replyID, actorID int64) error
}

type replyService struct {
	stores   StoreProvider
	txRunner TxRunner
	producer queue.Producer
	search   SearchService
}

func NewReplyService(stores StoreProvider, txRunner TxRunner, producer queue.Producer, search SearchService) ReplyService {
	return &replyService{
		stores:   stores,
		txRunner: txRunner,
		producer: producer,
		search:   search,
	}
}

// Add stores the reply, bumps the issue's reply counter and records the
// activity in one transaction, then publishes a single reply_created event.
func (s *replyService) Add(ctx context.Context, issue *model.Issue, params AddReplyParams) (*model.Reply, error) {
	if err := ValidateReplyBody(params.Body); err != nil {
		return nil, err
	}
	if issue.Locked {
		return nil, ErrIssueLocked
	}

	reply := &model.Reply{
		ID:      id.New(),
		IssueID: issue.ID,
		UserID:  params.UserID,
		Body:    params.Body,
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IssueID: &issue.ID,
		ReplyID: &reply.ID,
		UserID:  &params.UserID,
	})

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		// Counter first: a vanished issue surfaces as ErrNotFound, not a
		// foreign key failure on the insert.
		if err := sp.Issues().IncrementReplies(ctx, issue.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("incrementing replies count: %w", err)
		}
		if err := sp.Replies().Create(ctx, reply); err != nil {
			return fmt.Errorf("creating reply: %w", err)
		}
		return NewActivityRecorder(sp.Activities()).Record(ctx, reply.UserID, model.SubjectTypeReply, reply.ID, model.ActivityTypeCreatedReply)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.ErrorContext(ctx, "failed to add reply", "error", err)
		}
		return nil, err
	}

	event := queue.ReplyCreated(reply.ID, issue.ID, reply.UserID)
	if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
		event.TraceID = &traceID
	}
	if err := s.producer.Enqueue(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish reply_created", "error", err)
		return nil, fmt.Errorf("publishing reply event: %w: %w", ErrEventNotPublished, err)
	}

	issue.RepliesCount++
	slog.InfoContext(ctx, "reply added")
	syncIndex(ctx, s.search, issue.ID)
	return reply, nil
}

func (s *replyService) Get(ctx context.Context, replyID int64) (*model.Reply, error) {
	reply, err := s.stores.Replies().GetByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching reply: %w", err)
	}
	return reply, nil
}

// List returns the issue's replies oldest first.
func (s *replyService) List(ctx context.Context, issueID int64) ([]model.Reply, error) {
	replies, err := s.stores.Replies().ListByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("listing replies: %w", err)
	}
	return replies, nil
}

func (s *replyService) Update(ctx context.Context, replyID, actorID int64, body string) (*model.Reply, error) {
	if err := ValidateReplyBody(body); err != nil {
		return nil, err
	}

	reply, err := s.Get(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if !reply.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	updated, err := s.stores.Replies().UpdateBody(ctx, replyID, body)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating reply: %w", err)
	}
	return updated, nil
}

func (s *replyService) Delete(ctx context.Context, replyID, actorID int64) error {
	var issueID int64
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		reply, err := sp.Replies().GetByID(ctx, replyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("fetching reply: %w", err)
		}
		if !reply.IsOwnedBy(actorID) {
			return ErrForbidden
		}
		issueID = reply.IssueID
		return deleteReply(ctx, sp, reply)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrForbidden) {
			slog.ErrorContext(ctx, "failed to delete reply", "error", err, "reply_id", replyID)
		}
		return err
	}

	syncIndex(ctx, s.search, issueID)
	return nil
}

// ValidateReplyBody rejects blank bodies. Handlers call it before the reply
// guards so an invalid reply never consumes a throttle slot.
func ValidateReplyBody(body string) error {
	if strings.TrimSpace(body) == "" {
		v := newValidationError()
		v.Add("body", "is required")
		return v
	}
	return nil
}

// deleteReply is the single path that removes a reply: its activities, the
// row, and its share of the issue's counter. sp must be transaction-bound.
func deleteReply(ctx context.Context, sp StoreProvider, reply *model.Reply) error {
	if err := NewActivityRecorder(sp.Activities()).Forget(ctx, model.SubjectTypeReply, reply.ID); err != nil {
		return err
	}
	if err := sp.Replies().Delete(ctx, reply.ID); err != nil {
		return fmt.Errorf("deleting reply %d: %w", reply.ID, err)
	}
	if err := sp.Issues().DecrementReplies(ctx, reply.IssueID); err != nil {
		return fmt.Errorf("decrementing replies count: %w", err)
	}
	return nil
}
