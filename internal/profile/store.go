// Package profile persists the one durable per-visitor record: the
// serialized user profile, stored under a fixed key prefix.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("profile not found")

// Store is what the HTTP layer needs for profiles.
// Consumers define this interface, not the Redis implementation.
type Store interface {
	Get(ctx context.Context, visitorID string) (*domain.UserProfile, error)
	Save(ctx context.Context, visitorID string, p *domain.UserProfile) error
	Delete(ctx context.Context, visitorID string) error
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 30 * 24 * time.Hour,
	}
}

type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStore) Get(ctx context.Context, visitorID string) (*domain.UserProfile, error) {
	data, err := r.client.Get(ctx, profileKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var p domain.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile failed: %w", err)
	}
	return &p, nil
}

func (r *RedisStore) Save(ctx context.Context, visitorID string, p *domain.UserProfile) error {
	p.UpdatedAt = time.Now()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(60)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, profileKey(visitorID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, visitorID string) error {
	if err := r.client.Del(ctx, profileKey(visitorID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func profileKey(visitorID string) string {
	return fmt.Sprintf("sudisha-user:%s", visitorID)
}
