package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/redis"
)

// Store persists session carts.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type kv interface {
	GetEx(ctx context.Context, key string, ttl time.Duration) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps carts as JSON documents with a sliding TTL.
type RedisStore struct {
	client kv
	ttl    time.Duration
}

// NewRedisStore builds a cart store on the provided redis client.
func NewRedisStore(client kv, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the session cart, or an empty one when none is stored.
// Reading a stored cart restarts its TTL.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.GetEx(ctx, s.client.CartKey(sessionID), s.ttl)
	if err != nil {
		if redis.IsNil(err) {
			return &Cart{SessionID: sessionID}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	c.SessionID = sessionID
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	if c == nil || c.SessionID == "" {
		return fmt.Errorf("cart session id required")
	}
	c.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(c.SessionID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
