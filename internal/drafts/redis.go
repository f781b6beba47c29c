package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// RedisStore keeps each draft as a JSON string under draft:{profile}:{id} with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A non-positive ttl selects DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(profileID, id uuid.UUID) string {
	return fmt.Sprintf("draft:%s:%s", profileID, id)
}

func profilePattern(profileID uuid.UUID) string {
	return fmt.Sprintf("draft:%s:*", profileID)
}

func (s *RedisStore) Save(ctx context.Context, d *Draft) error {
	prepare(d, time.Now().UTC())

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ProfileID, d.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, profileID, id uuid.UUID) (*Draft, error) {
	payload, err := s.client.Get(ctx, draftKey(profileID, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (s *RedisStore) Delete(ctx context.Context, profileID, id uuid.UUID) error {
	n, err := s.client.Del(ctx, draftKey(profileID, id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, profileID uuid.UUID) ([]Draft, error) {
	keys, err := s.keys(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []Draft{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts: %w", err)
	}

	out := make([]Draft, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Expired between SCAN and MGET.
			continue
		}
		var d Draft
		if err := json.Unmarshal([]byte(str), &d); err != nil {
			return nil, fmt.Errorf("failed to decode draft %s: %w", keys[i], err)
		}
		out = append(out, d)
	}
	sortDrafts(out)
	return out, nil
}

func (s *RedisStore) DeleteAll(ctx context.Context, profileID uuid.UUID) error {
	keys, err := s.keys(ctx, profileID)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete drafts: %w", err)
	}
	return nil
}

func (s *RedisStore) keys(ctx context.Context, profileID uuid.UUID) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, profilePattern(profileID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan drafts: %w", err)
	}
	return keys, nil
}
