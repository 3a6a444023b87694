package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SettingsStore keeps settings in one Redis hash per profile namespace.
// It satisfies settings.Store.
type SettingsStore struct {
	client *redis.Client
	key    string
}

// NewSettingsStore creates a settings store for namespace.
func NewSettingsStore(client *redis.Client, namespace string) *SettingsStore {
	return &SettingsStore{
		client: client,
		key:    SettingsKey(namespace),
	}
}

// Get returns the value of field key, "" when it is not set.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return v, nil
}

// Set writes field key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// All returns every field of the hash.
func (s *SettingsStore) All(ctx context.Context) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return values, nil
}

// Import copies values into the hash in one pipeline round trip.
func (s *SettingsStore) Import(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for k, v := range values {
		pipe.HSet(ctx, s.key, k, v)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	return nil
}
