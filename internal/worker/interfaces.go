package worker

import (
	"context"

	"basegraph.app/forum/internal/queue"
)

// Dispatcher turns a reply_created event into notifications.
type Dispatcher interface {
	DispatchReplyCreated(ctx context.Context, event queue.EventMessage) (int, error)
}

// MessageHandler processes one message and settles it on the stream.
type MessageHandler func(ctx context.Context, msg queue.Message) error
