package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces all keys written by Redis.
const DefaultPrefix = "sheetscribe:"

const (
	apiKeyField       = "api_key"
	lastResponseField = "last_response"
)

// Redis stores values in a Redis server.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithTTL expires the last response after ttl. The API key never expires.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis connects to addr.
func NewRedis(addr string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr: addr,
		DB:   db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(field string) string {
	return r.prefix + field
}

func (r *Redis) get(ctx context.Context, field string) (string, error) {
	v, err := r.client.Get(ctx, r.key(field)).Result()
	if errors.Is(err, backend.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", field, err)
	}
	return v, nil
}

func (r *Redis) set(ctx context.Context, field, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(field), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", field, err)
	}
	return nil
}

func (r *Redis) APIKey(ctx context.Context) (string, error) {
	return r.get(ctx, apiKeyField)
}

func (r *Redis) SetAPIKey(ctx context.Context, key string) error {
	return r.set(ctx, apiKeyField, key, 0)
}

func (r *Redis) LastResponse(ctx context.Context) (string, error) {
	return r.get(ctx, lastResponseField)
}

func (r *Redis) SetLastResponse(ctx context.Context, text string) error {
	return r.set(ctx, lastResponseField, text, r.ttl)
}
