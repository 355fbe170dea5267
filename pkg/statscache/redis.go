// Package statscache caches computed player stats in Redis. Entries are
// invalidated whenever an event for the player is applied.
//
// Each player also has a generation counter under <prefix>gen:<player> that
// every invalidation increments. Readers note the generation before computing
// stats and Set refuses to write back once it has moved, so a computation that
// raced with an event never repopulates the cache with stale numbers.
package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/internal/metrics"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/config"
)

var errGenerationMoved = errors.New("stats generation moved")

// RedisCache stores PlayerStats as JSON under <prefix><player>
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// Connect dials Redis and verifies the connection
func Connect(ctx context.Context, cfg *config.CacheConfig, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return New(client, cfg, logger), nil
}

// New wraps an existing client
func New(client *redis.Client, cfg *config.CacheConfig, logger *zap.Logger) *RedisCache {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "mferoll:stats:"
	}
	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
		prefix: prefix,
		logger: logger,
	}
}

// Key returns the cache key for player
func (c *RedisCache) Key(player string) string {
	return c.prefix + bet.NormalizeAddress(player)
}

// GenKey returns the invalidation generation key for player
func (c *RedisCache) GenKey(player string) string {
	return c.prefix + "gen:" + bet.NormalizeAddress(player)
}

// Get returns cached stats for player together with the player's current
// generation. A miss returns nil stats; the generation is still valid and
// must be handed back to Set.
func (c *RedisCache) Get(ctx context.Context, player string) (*bet.PlayerStats, uint64, error) {
	vals, err := c.client.MGet(ctx, c.GenKey(player), c.Key(player)).Result()
	if err != nil {
		metrics.StatsCacheRequests.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("failed to read stats cache: %w", err)
	}

	gen, err := parseGeneration(vals[0])
	if err != nil {
		metrics.StatsCacheRequests.WithLabelValues("error").Inc()
		return nil, 0, err
	}

	raw, ok := vals[1].(string)
	if !ok {
		metrics.StatsCacheRequests.WithLabelValues("miss").Inc()
		return nil, gen, nil
	}

	var stats bet.PlayerStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// a corrupt entry behaves like a miss and is overwritten on the next Set
		metrics.StatsCacheRequests.WithLabelValues("error").Inc()
		c.logger.Warn("Discarding undecodable stats cache entry", zap.String("player", player), zap.Error(err))
		return nil, gen, nil
	}

	metrics.StatsCacheRequests.WithLabelValues("hit").Inc()
	return &stats, gen, nil
}

// Set stores stats with the configured TTL, provided the player's generation
// still equals gen. A moved generation skips the write without error.
func (c *RedisCache) Set(ctx context.Context, stats *bet.PlayerStats, gen uint64) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	genKey := c.GenKey(stats.Player)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseGeneration(cur)
		if err != nil {
			return err
		}
		if current != gen {
			return errGenerationMoved
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.Key(stats.Player), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, errGenerationMoved) || errors.Is(err, redis.TxFailedErr) {
		metrics.StatsCacheRequests.WithLabelValues("stale").Inc()
		c.logger.Debug("Skipping stale stats write-back", zap.String("player", stats.Player), zap.Uint64("generation", gen))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write stats cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached stats for player and bumps its generation
func (c *RedisCache) Invalidate(ctx context.Context, player string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.GenKey(player))
		pipe.Del(ctx, c.Key(player))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}

// parseGeneration reads a generation value as returned by GET or MGET.
// A missing key is generation zero.
func parseGeneration(v interface{}) (uint64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		if g == "" {
			return 0, nil
		}
		n, err := strconv.ParseUint(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid stats generation %q: %w", g, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected stats generation type %T", v)
	}
}

// OnEvent invalidates the stats of the event's player
func (c *RedisCache) OnEvent(ctx context.Context, ev bet.Event) {
	player := ev.Player()
	if player == "" {
		return
	}
	if err := c.Invalidate(ctx, player); err != nil {
		metrics.ErrorsTotal.WithLabelValues("statscache", "invalidate").Inc()
		c.logger.Warn("Stats cache invalidation failed", zap.String("player", player), zap.Error(err))
	}
}

// Ping checks that Redis is reachable
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
