package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/mosaic/pkg/cache"
	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// RedisStore keeps each record as a JSON string under prefix+"doc:"+id and
// tracks IDs in the set prefix+"index".
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *log.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := cache.RetryWithBackoff(ctx, func() error { return retryable(client.Ping(ctx).Err()) })
	if err != nil {
		_ = client.Close()
		return nil, storeError(err, "connect to redis at %s", cfg.Addr)
	}
	logger.Debug("connected to redis", "addr", cfg.Addr, "db", cfg.DB, "prefix", cfg.Prefix)
	return &RedisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + "doc:" + id }

func (s *RedisStore) indexKey() string { return s.prefix + "index" }

// retryable marks network failures for [cache.RetryWithBackoff].
func retryable(err error) error {
	var ne net.Error
	if errors.As(err, &ne) {
		return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errs.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(id)).Bytes()
		return retryable(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storeError(err, "get document %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storeError(err, "parse document %s", id)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	if err := prepare(rec, time.Now()); err != nil {
		return err
	}
	if old, err := s.Get(ctx, rec.ID); err == nil {
		rec.CreatedAt = old.CreatedAt
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(rec.ID), data, s.ttl)
			pipe.SAdd(ctx, s.indexKey(), rec.ID)
			return nil
		})
		return retryable(err)
	})
	if err != nil {
		return storeError(err, "put document %s", rec.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateDocumentID(id); err != nil {
		return err
	}
	var removed int64
	err := cache.RetryWithBackoff(ctx, func() error {
		var del *redis.IntCmd
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			del = pipe.Del(ctx, s.key(id))
			pipe.SRem(ctx, s.indexKey(), id)
			return nil
		})
		if err == nil {
			removed = del.Val()
		}
		return retryable(err)
	})
	if err != nil {
		return storeError(err, "delete document %s", id)
	}
	if removed == 0 {
		return notFound(id)
	}
	return nil
}

// List loads every indexed record. IDs whose key expired are dropped from
// the index.
func (s *RedisStore) List(ctx context.Context) ([]*Record, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, storeError(err, "list documents")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeError(err, "list documents")
	}

	var out []*Record
	var stale []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			continue
		}
		out = append(out, &rec)
	}
	if len(stale) > 0 {
		_ = s.client.SRem(ctx, s.indexKey(), stale...).Err()
	}
	sortRecords(out)
	return out, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
