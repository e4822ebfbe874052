// Package cache holds the Redis-backed leaderboard cache. The leaderboard is
// recomputed from the full match list on every request, which is cheap but
// not free; a short-TTL cached copy absorbs the refresh traffic from the
// public board.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"matchpoint/server/rating"
)

const (
	standingsKey = "leaderboard:standings"
	standingsTTL = 30 * time.Second
)

// Leaderboard is a best-effort cache: a nil client or a Redis failure
// degrades to recomputation, never to an error for the caller.
type Leaderboard struct {
	rdb *redis.Client
}

// NewLeaderboard wraps a Redis client; rdb may be nil to disable caching.
func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// Get returns the cached standings and whether a usable copy existed.
func (l *Leaderboard) Get(ctx context.Context) ([]rating.Standing, bool) {
	if l == nil || l.rdb == nil {
		return nil, false
	}
	raw, err := l.rdb.Get(ctx, standingsKey).Bytes()
	if err != nil {
		return nil, false // redis.Nil and transport errors alike
	}
	var rows []rating.Standing
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// Set stores the standings under the cache TTL.
func (l *Leaderboard) Set(ctx context.Context, rows []rating.Standing) {
	if l == nil || l.rdb == nil {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	_ = l.rdb.Set(ctx, standingsKey, raw, standingsTTL).Err()
}

// Invalidate drops the cached copy. Both rating write paths call this.
func (l *Leaderboard) Invalidate(ctx context.Context) {
	if l == nil || l.rdb == nil {
		return
	}
	_ = l.rdb.Del(ctx, standingsKey).Err()
}

// Connect dials Redis and verifies the connection. An empty addr returns a
// nil client, which NewLeaderboard treats as "caching off".
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis unreachable: %w", err)
	}
	return rdb, nil
}
