package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

func TestNewLayoutCacheRequiresAddr(t *testing.T) {
	if _, err := NewLayoutCache(logger.Nop(), LayoutCacheConfig{}); err == nil {
		t.Fatalf("expected error without address")
	}
	if _, err := NewLayoutCache(nil, LayoutCacheConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestLayoutCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	cache, err := NewLayoutCache(logger.Nop(), LayoutCacheConfig{
		Addr:   addr,
		Prefix: "navlayout-test-" + uuid.NewString(),
		TTL:    time.Minute,
	})
	if err != nil {
		t.Fatalf("NewLayoutCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	ctx := context.Background()
	key := "secondary/course/settings"

	if _, hit, err := cache.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}
	if err := cache.Set(ctx, key, []byte(`[{"type":"setting","key":"editsettings","position":0}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, hit, err := cache.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if len(raw) == 0 {
		t.Fatalf("Get after Set: empty payload")
	}

	if err := cache.Set(ctx, key, nil); err != nil {
		t.Fatalf("Set negative: %v", err)
	}
	raw, hit, err = cache.Get(ctx, key)
	if err != nil || !hit || len(raw) != 0 {
		t.Fatalf("negative entry: raw=%q hit=%v err=%v", raw, hit, err)
	}

	if err := cache.Invalidate(ctx, key); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, hit, _ := cache.Get(ctx, key); hit {
		t.Fatalf("Get after Invalidate: expected miss")
	}
}
