package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the payload under a single key without expiry.
type RedisSlot struct {
	client *redis.Client
	prefix string
	name   string
}

func NewRedisSlot(client *redis.Client, prefix, name string) *RedisSlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &RedisSlot{client: client, prefix: prefix, name: name}
}

func (s *RedisSlot) Name() string { return s.name }

// Key returns the redis key backing the slot.
func (s *RedisSlot) Key() string { return s.prefix + s.name }

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("redis get %s: %w", s.Key(), err)
	}
	return data, nil
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.Key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(), err)
	}
	return nil
}
