package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventTypeReplyCreated EventType = "reply_created"
)

// EventMessage is one domain event on the forum stream.
type EventMessage struct {
	EventType EventType
	ReplyID   int64
	IssueID   int64
	AuthorID  int64
	TraceID   *string
	Attempt   int
}

// ReplyCreated builds the event raised once a reply is durably stored.
func ReplyCreated(replyID, issueID, authorID int64) EventMessage {
	return EventMessage{
		EventType: EventTypeReplyCreated,
		ReplyID:   replyID,
		IssueID:   issueID,
		AuthorID:  authorID,
	}
}

type Producer interface {
	Enqueue(ctx context.Context, msg EventMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, msg EventMessage) error {
	if msg.Attempt <= 0 {
		msg.Attempt = 1
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: messageValues(msg),
	}).Err(); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued event",
		"event_type", msg.EventType,
		"reply_id", msg.ReplyID,
		"issue_id", msg.IssueID,
		"attempt", msg.Attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func messageValues(msg EventMessage) map[string]any {
	values := map[string]any{
		"event_type": string(msg.EventType),
		"reply_id":   msg.ReplyID,
		"issue_id":   msg.IssueID,
		"author_id":  msg.AuthorID,
		"attempt":    msg.Attempt,
	}
	if msg.TraceID != nil && *msg.TraceID != "" {
		values["trace_id"] = *msg.TraceID
	}
	return values
}
