// Package redisstore tracks per-user harmful-row counters and the in-flight
// trigger guard that keeps one threshold crossing from queueing several jobs.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Close() error { return s.rdb.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func countKey(userID int) string   { return fmt.Sprintf("harmful:count:%d", userID) }
func triggerKey(userID int) string { return fmt.Sprintf("report:inflight:%d", userID) }

// IncrHarmfulCount bumps a user's harmful-row counter and returns the new
// value.
func (s *Store) IncrHarmfulCount(ctx context.Context, userID int) (int64, error) {
	return s.rdb.Incr(ctx, countKey(userID)).Result()
}

// AcquireTrigger marks a generation run in flight for the user. Returns false
// when one is already pending; the TTL guards against workers that die
// without releasing.
func (s *Store) AcquireTrigger(ctx context.Context, userID int, jobID string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, triggerKey(userID), jobID, ttl).Result()
}

// ReleaseTrigger clears the in-flight marker once the job finished.
func (s *Store) ReleaseTrigger(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, triggerKey(userID)).Err()
}
