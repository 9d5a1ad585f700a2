package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

// RedisRevocations keeps logged out session hashes until the token expiry.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(redisURL string) (*RedisRevocations, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisRevocations{client: client}, nil
}

func NewRedisRevocationsWithClient(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (s *RedisRevocations) Revoke(ctx context.Context, tokenHash string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// already expired, nothing can use it
		return nil
	}
	if err := s.client.Set(ctx, revokedPrefix+tokenHash, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *RedisRevocations) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("lookup revoked session: %w", err)
	}
	return n > 0, nil
}

func (s *RedisRevocations) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisRevocations) Close() error {
	return s.client.Close()
}
