package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/lead-intake/internal/config"
)

const followUpKeyPrefix = "lead-intake:followup:"

// NewRedisClient creates a client for the follow-up marker store.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// RedisFollowUpStore keeps follow-up markers in Redis so they survive a
// restart. SETNX gives the once-per-lead guarantee across processes.
type RedisFollowUpStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFollowUpStore builds the store. A zero ttl keeps markers forever.
func NewRedisFollowUpStore(client *redis.Client, ttl time.Duration) *RedisFollowUpStore {
	return &RedisFollowUpStore{client: client, ttl: ttl}
}

func (s *RedisFollowUpStore) MarkSent(ctx context.Context, leadID int, at time.Time) (bool, error) {
	ok, err := s.client.SetNX(ctx, followUpKey(leadID), at.UTC().Format(time.RFC3339Nano), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: mark follow-up for lead %d: %w", leadID, err)
	}
	return ok, nil
}

func (s *RedisFollowUpStore) SentAt(ctx context.Context, leadID int) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, followUpKey(leadID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis: read follow-up for lead %d: %w", leadID, err)
	}
	at, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis: parse follow-up for lead %d: %w", leadID, err)
	}
	return at, true, nil
}

func (s *RedisFollowUpStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func followUpKey(leadID int) string {
	return followUpKeyPrefix + strconv.Itoa(leadID)
}
