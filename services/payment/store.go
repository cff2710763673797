// File: services/payment/store.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"streamafrica/models"

	"github.com/go-redis/redis/v8"
)

const (
	paymentSessionPrefix = "paymentSession:"
	opayEventPrefix      = "opayEvent:"
)

// PaymentStore persists payment-step sessions and out-of-band cashier
// events. Tests substitute an in-memory implementation.
type PaymentStore interface {
	Get(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	Save(ctx context.Context, session *models.PaymentSession) error
	Delete(ctx context.Context, sessionID string) error
	SaveEvent(ctx context.Context, event *models.OpayEvent) error
}

// RedisPaymentStore keeps payment sessions as JSON blobs with a TTL.
type RedisPaymentStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPaymentStore(client *redis.Client, ttl time.Duration) *RedisPaymentStore {
	return &RedisPaymentStore{client: client, ttl: ttl}
}

func (s *RedisPaymentStore) Get(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	data, err := s.client.Get(ctx, paymentSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment session: %w", err)
	}
	var session models.PaymentSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment session: %w", err)
	}
	return &session, nil
}

func (s *RedisPaymentStore) Save(ctx context.Context, session *models.PaymentSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal payment session: %w", err)
	}
	if err := s.client.Set(ctx, paymentSessionPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save payment session: %w", err)
	}
	return nil
}

func (s *RedisPaymentStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, paymentSessionPrefix+sessionID).Err()
}

// SaveEvent records a cashier callback keyed by its payment reference.
// Events are informational; nothing in the funnel reads them back.
func (s *RedisPaymentStore) SaveEvent(ctx context.Context, event *models.OpayEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cashier event: %w", err)
	}
	if err := s.client.Set(ctx, opayEventPrefix+event.Reference, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cashier event: %w", err)
	}
	return nil
}
