// Package storage opens the configured profile store and implements the
// Redis-backed one.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/redis/go-redis/v9"
)

const (
	fieldCanWarp     = "can_warp"
	fieldFloorNumber = "floor_number"
	fieldLastUpdate  = "last_update"

	// maxTxRetries bounds optimistic-lock retries when two turns of the same
	// player race.
	maxTxRetries = 5
)

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore implements profile.Store on Redis. Each profile is a hash at
// <prefix><user key>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ profile.Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "profile:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(userKey string) string {
	return s.prefix + userKey
}

// LoadProfile implements profile.Store.
func (s *RedisStore) LoadProfile(ctx context.Context, key string) (*profile.Profile, error) {
	return loadProfile(ctx, s.client, s.key(key))
}

// hashReader is satisfied by both *redis.Client and *redis.Tx.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func loadProfile(ctx context.Context, c hashReader, redisKey string) (*profile.Profile, error) {
	fields, err := c.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeProfile(redisKey, fields), nil
}

// CreateProfile implements profile.Store. An existing profile is kept.
func (s *RedisStore) CreateProfile(ctx context.Context, key string, p profile.Profile) error {
	redisKey := s.key(key)
	return s.update(ctx, redisKey, func(tx *redis.Tx) (map[string]any, error) {
		n, err := tx.Exists(ctx, redisKey).Result()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			logger.Debug("Profile already exists", "user_key", key)
			return nil, nil
		}
		return encodeProfile(p), nil
	})
}

// SaveProgress implements profile.Store.
func (s *RedisStore) SaveProgress(ctx context.Context, key string, update profile.Progress, at time.Time) error {
	redisKey := s.key(key)
	return s.update(ctx, redisKey, func(tx *redis.Tx) (map[string]any, error) {
		current, err := loadProfile(ctx, tx, redisKey)
		if err != nil {
			return nil, err
		}
		next := profile.Default()
		if current != nil {
			next = *current
		}
		if !next.ValidFloor() && update.FloorNumber == 0 {
			next.FloorNumber = profile.MinFloor
		}
		return encodeProfile(next.Apply(update, at)), nil
	})
}

// update runs a WATCH/MULTI cycle on one profile hash. build returns the
// fields to write, or nil to write nothing.
func (s *RedisStore) update(ctx context.Context, redisKey string, build func(tx *redis.Tx) (map[string]any, error)) error {
	txf := func(tx *redis.Tx) error {
		fields, err := build(tx)
		if err != nil || fields == nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, redisKey, fields)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, redisKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis update %s: %w", redisKey, err)
		}
		return nil
	}
	return fmt.Errorf("redis update %s: too many concurrent writers", redisKey)
}

// Ping reports whether Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeProfile(p profile.Profile) map[string]any {
	lastUpdate := ""
	if !p.LastUpdate.IsZero() {
		lastUpdate = profile.Day(p.LastUpdate).Format(profile.DateLayout)
	}
	return map[string]any{
		fieldCanWarp:     strconv.FormatBool(p.CanWarp),
		fieldFloorNumber: p.FloorNumber,
		fieldLastUpdate:  lastUpdate,
	}
}

// decodeProfile never fails. A field that does not parse decodes to its zero
// value, which leaves the floor out of range so profile.Service heals it.
func decodeProfile(redisKey string, fields map[string]string) *profile.Profile {
	var p profile.Profile
	var err error

	if v, ok := fields[fieldCanWarp]; ok {
		if p.CanWarp, err = strconv.ParseBool(v); err != nil {
			logger.Warning("Unreadable profile field", "key", redisKey, "field", fieldCanWarp, "value", v)
		}
	}
	if v := fields[fieldFloorNumber]; v != "" {
		if p.FloorNumber, err = strconv.Atoi(v); err != nil {
			logger.Warning("Unreadable profile field", "key", redisKey, "field", fieldFloorNumber, "value", v)
			p.FloorNumber = 0
		}
	}
	if v := fields[fieldLastUpdate]; v != "" {
		if p.LastUpdate, err = time.Parse(profile.DateLayout, v); err != nil {
			logger.Warning("Unreadable profile field", "key", redisKey, "field", fieldLastUpdate, "value", v)
			p.LastUpdate = time.Time{}
		}
	}
	return &p
}
