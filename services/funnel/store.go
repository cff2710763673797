// File: services/funnel/store.go
package funnel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"streamafrica/models"

	"github.com/go-redis/redis/v8"
)

const funnelSessionPrefix = "funnelSession:"

// SessionStore persists funnel sessions. The Redis implementation is used
// in production; tests substitute an in-memory one.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.FunnelSession, error)
	Save(ctx context.Context, session *models.FunnelSession) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON blobs with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.FunnelSession, error) {
	data, err := s.client.Get(ctx, funnelSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funnel session: %w", err)
	}
	var session models.FunnelSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal funnel session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.FunnelSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal funnel session: %w", err)
	}
	if err := s.client.Set(ctx, funnelSessionPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save funnel session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, funnelSessionPrefix+sessionID).Err()
}
