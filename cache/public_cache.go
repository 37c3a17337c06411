package public_cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or the cache is down.
var ErrCacheMiss = errors.New("public cache miss")

const (
	keyPrefix  = "publiccache"
	versionTTL = 7 * 24 * time.Hour
)

// Store is the Redis public cache. Keys are namespaced by a version counter so
// a namespace is invalidated by bumping the counter instead of scanning keys.
// A Store with a nil client behaves as an always-empty cache.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func VersionKey(namespace string) string {
	return fmt.Sprintf("%s:%s:ver", keyPrefix, namespace)
}

// Key builds "publiccache:<namespace>:v<version>:<name>".
func Key(namespace string, version int64, name string) string {
	return fmt.Sprintf("%s:%s:v%d:%s", keyPrefix, namespace, version, name)
}

// Version returns the namespace version, initializing it to 1.
func (s *Store) Version(ctx context.Context, namespace string) (int64, error) {
	if s.client == nil {
		return 1, nil
	}
	key := VersionKey(namespace)
	v, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent bump is never overwritten.
		if err := s.client.SetNX(ctx, key, 1, versionTTL).Err(); err != nil {
			return 1, err
		}
		return s.client.Get(ctx, key).Int64()
	}
	if err != nil {
		return 1, err
	}
	return v, nil
}

// BumpVersion invalidates every key of the namespace.
func (s *Store) BumpVersion(ctx context.Context, namespace string) (int64, error) {
	if s.client == nil {
		return 1, nil
	}
	key := VersionKey(namespace)
	v, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	s.client.Expire(ctx, key, versionTTL)
	return v, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrCacheMiss
	}
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheMiss, err)
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}
