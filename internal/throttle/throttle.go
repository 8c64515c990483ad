// Package throttle limits how often a user may reply.
package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type Scope string

const (
	// ScopeUser allows one reply per user per window across all issues.
	ScopeUser Scope = "user"
	// ScopeIssue allows one reply per user per issue per window.
	ScopeIssue Scope = "issue"
)

// Limiter atomically takes the single slot a key has per window. Release hands
// a taken slot back before the window ends.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Key builds the limiter key for a reply attempt under scope.
func Key(scope Scope, userID, issueID int64) string {
	if scope == ScopeIssue {
		return fmt.Sprintf("throttle:replies:user:%d:issue:%d", userID, issueID)
	}
	return fmt.Sprintf("throttle:replies:user:%d", userID)
}

type redisLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewRedisLimiter shares the window across every server process. The slot is a
// key written with SET NX PX, so two simultaneous requests cannot both win.
func NewRedisLimiter(client *redis.Client, window time.Duration) Limiter {
	return &redisLimiter{client: client, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), l.window).Result()
	if err != nil {
		return false, fmt.Errorf("taking throttle slot: %w", err)
	}
	return ok, nil
}

func (l *redisLimiter) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("releasing throttle slot: %w", err)
	}
	return nil
}

type MemoryLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	lastAccess map[string]time.Time
	window     time.Duration
	now        func() time.Time
}

// NewMemoryLimiter keeps one token bucket per key in process memory. It is
// only correct with a single server instance.
func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	return newMemoryLimiter(window, time.Now)
}

func newMemoryLimiter(window time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		limiters:   make(map[string]*rate.Limiter),
		lastAccess: make(map[string]time.Time),
		window:     window,
		now:        now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.window), 1)
		l.limiters[key] = limiter
	}
	l.lastAccess[key] = now
	return limiter.AllowN(now, 1), nil
}

// Release drops the bucket; the next Allow starts from a full one.
func (l *MemoryLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.limiters, key)
	delete(l.lastAccess, key)
	return nil
}

// Evict drops buckets idle for longer than the window; they would be full again anyway.
func (l *MemoryLimiter) Evict() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.limiters, key)
			delete(l.lastAccess, key)
		}
	}
}

// RunEvictor calls Evict every interval until ctx is done.
func (l *MemoryLimiter) RunEvictor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict()
		}
	}
}
