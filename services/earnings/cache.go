package earnings

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"urbanset/models"
	"urbanset/utils"

	"github.com/go-redis/redis/v8"
)

// StatsCache stores computed booking stats per worker. Every snapshot
// belongs to a generation and Invalidate starts a new one, so a snapshot
// computed before a booking write is never served after it.
type StatsCache interface {
	// Get returns the snapshot for the current generation (nil on a miss)
	// together with that generation.
	Get(ctx context.Context, workerID string) (*models.BookingStats, int64, error)
	// Set stores stats under the generation returned by Get.
	Set(ctx context.Context, workerID string, generation int64, stats models.BookingStats) error
	Invalidate(ctx context.Context, workerID string) error
}

// RedisStatsCache keeps stats snapshots under stats:<workerId>:<generation>
// and the current generation under stats:gen:<workerId>.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func generationKey(workerID string) string {
	return utils.StatsCachePrefix + "gen:" + workerID
}

func statsKey(workerID string, generation int64) string {
	return utils.StatsCachePrefix + workerID + ":" + strconv.FormatInt(generation, 10)
}

func (c *RedisStatsCache) Get(ctx context.Context, workerID string) (*models.BookingStats, int64, error) {
	generation, err := c.client.Get(ctx, generationKey(workerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	val, err := c.client.Get(ctx, statsKey(workerID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var stats models.BookingStats
	if err := json.Unmarshal(val, &stats); err != nil {
		return nil, 0, err
	}
	return &stats, generation, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, workerID string, generation int64, stats models.BookingStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(workerID, generation), data, c.ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, workerID string) error {
	return c.client.Incr(ctx, generationKey(workerID)).Err()
}
