// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"streamafrica/config"

	"github.com/go-redis/redis/v8"
)

var (
	// FunnelCacheClient holds the per-visitor navigation sessions.
	FunnelCacheClient *redis.Client
	// PaymentCacheClient holds the ephemeral payment-step sessions.
	PaymentCacheClient *redis.Client
)

// InitFunnelCache initializes the Redis client for funnel sessions.
func InitFunnelCache() {
	FunnelCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisFunnelDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := FunnelCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Funnel Cache): %v", err)
	}
}

// GetFunnelCacheClient returns the funnel session client.
func GetFunnelCacheClient() *redis.Client {
	if FunnelCacheClient == nil {
		InitFunnelCache()
	}
	return FunnelCacheClient
}

// InitPaymentCache initializes the Redis client for payment sessions.
func InitPaymentCache() {
	PaymentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPaymentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := PaymentCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Payment Cache): %v", err)
	}
}

// GetPaymentCacheClient returns the payment session client.
func GetPaymentCacheClient() *redis.Client {
	if PaymentCacheClient == nil {
		InitPaymentCache()
	}
	return PaymentCacheClient
}
