package app

import (
	rediscache "github.com/yungbote/neurobridge-navigation/internal/clients/redis"
	"github.com/yungbote/neurobridge-navigation/internal/navigation"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

type Clients struct {
	LayoutCache rediscache.LayoutCache
}

// wireClients connects the optional layout cache. A missing REDIS_ADDR or an
// unreachable server leaves the cache off; layouts are then read from the
// database on every build.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")
	var out Clients
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, layout cache disabled")
		return out
	}
	cache, err := rediscache.NewLayoutCache(log, rediscache.LayoutCacheConfig{
		Addr: cfg.RedisAddr,
		TTL:  cfg.LayoutCacheTTL,
	})
	if err != nil {
		log.Warn("Layout cache unavailable, continuing without it", "error", err)
		return out
	}
	out.LayoutCache = cache
	return out
}

func (c Clients) Close(log *logger.Logger) {
	if c.LayoutCache != nil {
		if err := c.LayoutCache.Close(); err != nil {
			log.Warn("Layout cache close failed", "error", err)
		}
	}
}

// loadLayouts reads NAV_LAYOUT_FILE when set, otherwise the built-in maps.
func loadLayouts(log *logger.Logger, cfg Config) (navigation.LayoutSet, error) {
	if cfg.LayoutFile == "" {
		return navigation.DefaultLayouts(), nil
	}
	set, err := navigation.LoadLayoutFile(cfg.LayoutFile)
	if err != nil {
		return nil, err
	}
	log.Info("Layout file loaded", "path", cfg.LayoutFile)
	return set, nil
}
