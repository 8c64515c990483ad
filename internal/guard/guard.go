// Package guard holds the request-level policies that run before a reply is
// stored. They are not part of the issue aggregate.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/forum/internal/spam"
	"basegraph.app/forum/internal/throttle"
)

var (
	ErrSpam      = errors.New("reply looks like spam")
	ErrThrottled = errors.New("you are replying too frequently")
)

// ReplyAttempt is what the guards get to see about an incoming reply.
type ReplyAttempt struct {
	UserID  int64
	IssueID int64
	Body    string
}

type Guard interface {
	Check(ctx context.Context, attempt ReplyAttempt) error
}

// Releaser is implemented by guards that hold state for an admitted attempt.
// Release undoes that state when the reply was never stored.
type Releaser interface {
	Release(ctx context.Context, attempt ReplyAttempt) error
}

// Release calls g.Release when g holds state, and is a no-op otherwise.
func Release(ctx context.Context, g Guard, attempt ReplyAttempt) error {
	if r, ok := g.(Releaser); ok {
		return r.Release(ctx, attempt)
	}
	return nil
}

// Chain runs guards in order and stops at the first rejection. Put guards that
// consume state (throttle) last so a rejected reply does not burn a slot.
type Chain []Guard

func (c Chain) Check(ctx context.Context, attempt ReplyAttempt) error {
	for _, g := range c {
		if err := g.Check(ctx, attempt); err != nil {
			return err
		}
	}
	return nil
}

func (c Chain) Release(ctx context.Context, attempt ReplyAttempt) error {
	var errs []error
	for _, g := range c {
		if err := Release(ctx, g, attempt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type spamGuard struct {
	detector *spam.Detector
}

func Spam(detector *spam.Detector) Guard {
	return &spamGuard{detector: detector}
}

func (g *spamGuard) Check(ctx context.Context, attempt ReplyAttempt) error {
	if inspection, hit := g.detector.Detect(attempt.Body); hit {
		slog.InfoContext(ctx, "reply rejected as spam",
			"inspection", inspection,
			"user_id", attempt.UserID,
			"issue_id", attempt.IssueID)
		return fmt.Errorf("%w (%s)", ErrSpam, inspection)
	}
	return nil
}

type throttleGuard struct {
	limiter throttle.Limiter
	scope   throttle.Scope
}

func Throttle(limiter throttle.Limiter, scope throttle.Scope) Guard {
	return &throttleGuard{limiter: limiter, scope: scope}
}

func (g *throttleGuard) Check(ctx context.Context, attempt ReplyAttempt) error {
	ok, err := g.limiter.Allow(ctx, throttle.Key(g.scope, attempt.UserID, attempt.IssueID))
	if err != nil {
		return fmt.Errorf("checking reply throttle: %w", err)
	}
	if !ok {
		return ErrThrottled
	}
	return nil
}

func (g *throttleGuard) Release(ctx context.Context, attempt ReplyAttempt) error {
	if err := g.limiter.Release(ctx, throttle.Key(g.scope, attempt.UserID, attempt.IssueID)); err != nil {
		return fmt.Errorf("releasing reply throttle: %w", err)
	}
	return nil
}
