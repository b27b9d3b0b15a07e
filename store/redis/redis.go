package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/juju/errors"
	"github.com/warriorguo/flowedit/store"
)

var (
	_ store.Store = &redisStore{}
)

const defaultKeyPrefix = "flowedit"

// Config holds Redis connection configuration
type Config struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key written by the store
	KeyPrefix string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:      "localhost:6379",
		KeyPrefix: defaultKeyPrefix,
	}
}

// redisStore implements Store interface using one Redis string per key
type redisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore connects to Redis with the given configuration
func NewRedisStore(config *Config) (store.Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, errors.Annotatef(err, "failed to ping redis %s", config.Addr)
	}
	return NewRedisStoreWithClient(client, config.KeyPrefix), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) store.Store {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &redisStore{client: client, keyPrefix: keyPrefix}
}

func (r *redisStore) formatKey(prefix, key string) string {
	return r.keyPrefix + ":" + prefix + key
}

func (r *redisStore) Get(ctx context.Context, prefix, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.formatKey(prefix, key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "failed to get value for prefix=%s, key=%s", prefix, key)
	}
	return value, nil
}

func (r *redisStore) Set(ctx context.Context, prefix, key string, value []byte) error {
	if err := r.client.Set(ctx, r.formatKey(prefix, key), value, 0).Err(); err != nil {
		return errors.Annotatef(err, "failed to set value for prefix=%s, key=%s", prefix, key)
	}
	return nil
}

func (r *redisStore) Remove(ctx context.Context, prefix, key string) error {
	if err := r.client.Del(ctx, r.formatKey(prefix, key)).Err(); err != nil {
		return errors.Annotatef(err, "failed to remove value for prefix=%s, key=%s", prefix, key)
	}
	return nil
}

// Close closes the redis connection
func (r *redisStore) Close() error {
	return r.client.Close()
}
