package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

// LayoutCache is a read-through cache for layout overrides, keyed by the
// "view/level/source" form of a layout key. A cached empty value records
// that no override exists.
type LayoutCache interface {
	Get(ctx context.Context, key string) (raw []byte, hit bool, err error)
	Set(ctx context.Context, key string, raw []byte) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

type LayoutCacheConfig struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

type layoutCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewLayoutCache(log *logger.Logger, cfg LayoutCacheConfig) (LayoutCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "navlayout"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &layoutCache{
		log:    log.With("service", "RedisLayoutCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *layoutCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *layoutCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("redis layout cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *layoutCache) Set(ctx context.Context, key string, raw []byte) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis layout cache not initialized")
	}
	if raw == nil {
		raw = []byte{}
	}
	return c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *layoutCache) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis layout cache not initialized")
	}
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		return err
	}
	c.log.Debug("Layout cache entry invalidated", "key", key)
	return nil
}

func (c *layoutCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
