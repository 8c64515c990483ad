// Package visits remembers when a user last looked at an issue.
package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Tracker interface {
	// LastVisited returns the zero time when the user never visited the issue.
	LastVisited(ctx context.Context, userID, issueID int64) (time.Time, error)
	Record(ctx context.Context, userID, issueID int64, at time.Time) error
}

type redisTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTracker stores one watermark per (user, issue). ttl <= 0 keeps them forever.
func NewRedisTracker(client *redis.Client, ttl time.Duration) Tracker {
	return &redisTracker{client: client, ttl: ttl}
}

func Key(userID, issueID int64) string {
	return fmt.Sprintf("users:%d:visits:%d", userID, issueID)
}

func (t *redisTracker) LastVisited(ctx context.Context, userID, issueID int64) (time.Time, error) {
	raw, err := t.client.Get(ctx, Key(userID, issueID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("reading visit watermark: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing visit watermark %q: %w", raw, err)
	}
	return at, nil
}

func (t *redisTracker) Record(ctx context.Context, userID, issueID int64, at time.Time) error {
	ttl := t.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := t.client.Set(ctx, Key(userID, issueID), at.UTC().Format(time.RFC3339Nano), ttl).Err(); err != nil {
		return fmt.Errorf("writing visit watermark: %w", err)
	}
	return nil
}
