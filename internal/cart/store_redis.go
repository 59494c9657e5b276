package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps cart slots in Redis without expiry; a cart survives until
// the shopper clears it or completes a checkout.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context, cartID string) (*Cart, error) {
	data, err := s.client.Get(ctx, slotKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	cart, err := decodeCart(data)
	if err != nil {
		s.logger.Warn("discarding unparseable cart slot", zap.String("cart_id", cartID), zap.Error(err))
		return New(), nil
	}
	return cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cartID string, cart *Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := s.client.Set(ctx, slotKey(cartID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, slotKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
