package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/directory/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "directory:session:"

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Username  string `yaml:"username" json:"username"`
	Password  string `yaml:"password" json:"password"`
	DB        int    `yaml:"db" json:"db"`
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"`
}

// RedisStore shares sessions between instances. Keys are the SHA-256
// fingerprint of the token so raw tokens never reach Redis; expiry is
// Redis's own TTL, pushed out on every read.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	idle      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig, idle time.Duration) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis session store requires an address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.KeyPrefix, idle), nil
}

// NewRedisStoreWithClient wraps a pre-configured client.
func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string, idle time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, idle: idle}
}

func (r *RedisStore) key(token string) string {
	return r.keyPrefix + cryptox.FingerprintToken(token)
}

func (r *RedisStore) Create(ctx context.Context, s Session) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	s.CreatedAt = now
	s.LastActivity = now

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(token), data, r.idle).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	key := r.key(token)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	s.LastActivity = time.Now().UTC()
	data, err = json.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.idle).Err(); err != nil {
		return Session{}, fmt.Errorf("failed to refresh session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

func (r *RedisStore) Sweep(ctx context.Context) (int, error) { return 0, nil }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
