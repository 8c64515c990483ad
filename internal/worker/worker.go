package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"basegraph.app/forum/common/logger"
	"basegraph.app/forum/internal/queue"
)

const errorBackoff = time.Second

// Worker consumes forum events and fans reply notifications out to subscribers.
type Worker struct {
	consumer   queue.Consumer
	dispatcher Dispatcher

	stopCh    chan struct{}
	stoppedCh chan struct{}
	stopOnce  sync.Once
}

func New(consumer queue.Consumer, dispatcher Dispatcher) *Worker {
	return &Worker{
		consumer:   consumer,
		dispatcher: dispatcher,
		stopCh:     make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled or Stop is called.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "forum.worker"})
	slog.InfoContext(ctx, "worker started", "max_attempts", w.consumer.MaxAttempts())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-w.stopCh:
					return nil
				case <-time.After(errorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.ProcessMessage(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message settlement failed",
				"error", err,
				"message_id", msg.ID)
		}
	}
	return nil
}

// ProcessMessage dispatches msg and then acks, requeues or dead-letters it.
// Exported for the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	msgID := msg.ID
	eventType := string(msg.EventType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msgID,
		EventType: &eventType,
		IssueID:   &msg.IssueID,
		ReplyID:   &msg.ReplyID,
	})

	traceID := ""
	if msg.TraceID != nil {
		traceID = *msg.TraceID
	}
	sc := logger.StartSpanFromTraceID(ctx, traceID, "worker.dispatch_reply_created")
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	sent, err := w.dispatchSafe(ctx, msg)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "dispatch failed",
			"error", err,
			"attempt", msg.Attempt)
		return w.handleFailedMessage(ctx, msg, err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// the reclaimer redelivers it; notifications may then be written twice
		return fmt.Errorf("acking message: %w", err)
	}

	slog.InfoContext(ctx, "notifications dispatched",
		"notifications", sent,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) dispatchSafe(ctx context.Context, msg queue.Message) (sent int, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.dispatcher.DispatchReplyCreated(ctx, msg.EventMessage)
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, cause error) error {
	if msg.Attempt >= w.consumer.MaxAttempts() {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Attempt)
		if err := w.consumer.SendDLQ(ctx, msg, cause.Error()); err != nil {
			return fmt.Errorf("sending to dlq: %w", err)
		}
		return nil
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if err := w.consumer.Requeue(ctx, msg, cause.Error()); err != nil {
		return fmt.Errorf("requeuing: %w", err)
	}
	return nil
}
