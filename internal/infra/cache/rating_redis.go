package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/domain/rating"
)

const (
	ratingKeyPrefix           = "rating:summary:"
	ratingGenerationKeyPrefix = "rating:gen:"

	// generationTTL outlives any summary so a racing Set always sees the
	// bump. An expired counter only costs a skipped Set.
	generationTTL = 24 * time.Hour
)

var errStaleSummary = errors.New("rating summary computed before the last invalidation")

// RedisRatingCache stores rating summaries as JSON. Redis failures are
// logged and treated as misses; the database stays authoritative.
type RedisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewRedisRatingCache(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RedisRatingCache {
	return &RedisRatingCache{
		client: client,
		ttl:    ttl,
		log:    log.WithField("component", "rating_cache"),
	}
}

func ratingKey(userID string) string {
	return ratingKeyPrefix + userID
}

func generationKey(userID string) string {
	return ratingGenerationKeyPrefix + userID
}

func (c *RedisRatingCache) Get(ctx context.Context, userID string) (*rating.Summary, int64, bool) {
	pipe := c.client.Pipeline()
	summary := pipe.Get(ctx, ratingKey(userID))
	gen := pipe.Get(ctx, generationKey(userID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		c.log.WithError(err).WithField("user_id", userID).Warn("cache read failed")
		return nil, -1, false
	}

	generation, err := gen.Int64()
	if err != nil && err != redis.Nil {
		generation = -1
	}

	raw, err := summary.Bytes()
	if err != nil {
		return nil, generation, false
	}

	var s rating.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		c.log.WithError(err).WithField("user_id", userID).Warn("cache entry corrupt")
		return nil, generation, false
	}
	return &s, generation, true
}

// Set stores s when the user's generation still equals generation. The
// check and the write run in one WATCH transaction.
func (c *RedisRatingCache) Set(ctx context.Context, s rating.Summary, generation int64) {
	if generation < 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}

	genKey := generationKey(s.UserID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return errStaleSummary
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ratingKey(s.UserID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSummary), errors.Is(err, redis.TxFailedErr):
		c.log.WithField("user_id", s.UserID).Debug("stale summary not cached")
	default:
		c.log.WithError(err).WithField("user_id", s.UserID).Warn("cache write failed")
	}
}

func (c *RedisRatingCache) Invalidate(ctx context.Context, userID string) {
	genKey := generationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, ratingKey(userID))
		return nil
	})
	if err != nil {
		c.log.WithError(err).WithField("user_id", userID).Warn("cache invalidate failed")
	}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// NoopRatingCache is used when no REDIS_URL is configured.
type NoopRatingCache struct{}

func (NoopRatingCache) Get(context.Context, string) (*rating.Summary, int64, bool) { return nil, -1, false }
func (NoopRatingCache) Set(context.Context, rating.Summary, int64)                 {}
func (NoopRatingCache) Invalidate(context.Context, string)                         {}

var (
	_ rating.SummaryCache = (*RedisRatingCache)(nil)
	_ rating.SummaryCache = NoopRatingCache{}
)
