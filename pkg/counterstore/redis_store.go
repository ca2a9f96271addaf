package counterstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// go-redis reports a key without expiry as TTL -1 and a missing key as -2,
// mirroring the redis TTL command.
const ttlNoExpiry = time.Duration(-1)

// RedisStore implements Store on top of a go-redis client.
type RedisStore struct {
	client redis.UniversalClient
	log    *slog.Logger
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithLogger sets the logger used to report failed store operations.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRedisStore wraps a go-redis client. The client is expected to carry its
// own reconnect and retry policy.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	val, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, s.fail(ctx, "incr", key, err)
	}
	// INCR returning 1 means this call created the key, so it owns the
	// window. Later increments must not refresh it.
	if val == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return val, s.fail(ctx, "expire", key, err)
		}
	}
	return val, nil
}

func (s *RedisStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return s.fail(ctx, "set", key, err)
	}
	return nil
}

func (s *RedisStore) GetInt(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, s.fail(ctx, "get", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, s.fail(ctx, "exists", key, err)
	}
	return n > 0, nil
}

func (s *RedisStore) TTLRemaining(ctx context.Context, key string) (time.Duration, bool, error) {
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, s.fail(ctx, "ttl", key, err)
	}
	if d <= 0 {
		return 0, false, nil
	}
	return d, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return s.fail(ctx, "del", key, err)
	}
	return nil
}

func (s *RedisStore) IncrScore(ctx context.Context, key, member string, delta float64) error {
	if err := s.client.ZIncrBy(ctx, key, delta, member).Err(); err != nil {
		return s.fail(ctx, "zincrby", key, err)
	}
	return nil
}

func (s *RedisStore) TopScores(ctx context.Context, key string, n int64) ([]ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.client.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, s.fail(ctx, "zrevrange", key, err)
	}
	out := make([]ScoredMember, 0, len(raw))
	for _, z := range raw {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, ScoredMember{Member: member, Score: z.Score})
	}
	return out, nil
}

func (s *RedisStore) EnsureTTL(ctx context.Context, key string, ttl time.Duration) error {
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return s.fail(ctx, "ttl", key, err)
	}
	if d == ttlNoExpiry {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return s.fail(ctx, "expire", key, err)
		}
	}
	return nil
}

// fail logs a store communication failure and passes the error through.
// Consumers complete the fail-open policy by mapping it to a safe default.
func (s *RedisStore) fail(ctx context.Context, op, key string, err error) error {
	s.log.ErrorContext(ctx, "counter store operation failed",
		slog.String("op", op),
		slog.String("key", key),
		slog.Any("error", err),
	)
	return err
}
