package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCacheTTL is the time-to-live for cached PIN lookups.
	SessionCacheTTL = 24 * time.Hour

	sessionCacheKeyPrefix = "session:pin"
)

// CachedSession is the denormalized read model stored in Redis for PIN
// lookups — the hot path for joins. Fields are stored as a Redis hash.
type CachedSession struct {
	ID        uuid.UUID `json:"id"`
	Pin       string    `json:"pin"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionCache provides structured read/write operations for PIN → session
// cache entries. Key format: "session:pin:{pin}".
type SessionCache struct {
	client *RedisClient
}

// NewSessionCache creates a new SessionCache backed by the given RedisClient.
func NewSessionCache(r *RedisClient) *SessionCache {
	return &SessionCache{client: r}
}

// Get retrieves a cached session by PIN.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *SessionCache) Get(ctx context.Context, pin string) (*CachedSession, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(pin)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdBy, err := uuid.Parse(vals["created_by"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_by: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedSession{
		ID:        id,
		Pin:       vals["pin"],
		Name:      vals["name"],
		CreatedBy: createdBy,
		Status:    vals["status"],
		CreatedAt: createdAt,
	}, nil
}

// Set writes a cached session as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *SessionCache) Set(ctx context.Context, session *CachedSession) error {
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, c.key(session.Pin),
		"id", session.ID.String(),
		"pin", session.Pin,
		"name", session.Name,
		"created_by", session.CreatedBy.String(),
		"status", session.Status,
		"created_at", session.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key(session.Pin), SessionCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached session by PIN. Called when a session closes so a
// stale active entry never serves a join.
func (c *SessionCache) Delete(ctx context.Context, pin string) error {
	if err := c.client.Client().Del(ctx, c.key(pin)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "session:pin:{pin}"
func (c *SessionCache) key(pin string) string {
	return fmt.Sprintf("%s:%s", sessionCacheKeyPrefix, pin)
}
