package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: time.Minute,
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(testConfig(10))
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/results", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/results", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))

	allowed, _ = limiter.Allow("10.0.0.2", "/api/results", "GET")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: 100 * time.Millisecond})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("c", "/x", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/x", "GET")
	require.False(t, allowed)

	time.Sleep(150 * time.Millisecond)
	allowed, _ = limiter.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig(1)
	cfg.Whitelist = ParseIPList([]string{"10.0.0.1, 10.0.0.9"})
	cfg.Blacklist = ParseIPList([]string{"10.0.0.66"})
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.9", "/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("10.0.0.66", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("c", "/x", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointTiers(t *testing.T) {
	cfg := testConfig(1000)
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowedCount := 0
	for _, path := range []string{"/api/analyze/url", "/api/analyze/text", "/api/analyze/file", "/api/analyze/url"} {
		if allowed, _ := limiter.Allow("c", path, "POST"); allowed {
			allowedCount++
		}
	}
	assert.Equal(t, 3, allowedCount, "submissions share the tier burst")

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	m := MatchEndpoint("/api/results/export/pdf", "GET", configs)
	require.NotNil(t, m)
	assert.Equal(t, 30, m.Limit)

	m = MatchEndpoint("/api/results/modal", "POST", configs)
	require.NotNil(t, m)
	assert.Equal(t, 240, m.Limit)

	assert.Nil(t, MatchEndpoint("/api/results", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(testConfig(100))
	defer limiter.Stop()

	var allowed int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/x", "GET"); ok {
				atomic.AddInt32(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	got := atomic.LoadInt32(&allowed)
	assert.GreaterOrEqual(t, got, int32(100))
	assert.LessOrEqual(t, got, int32(102), "refill during the test allows at most a couple more")
}

func TestLimiter_Cleanup(t *testing.T) {
	cfg := testConfig(10)
	cfg.IdleTimeout = time.Minute
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/x", "GET")
	}
	assert.Equal(t, 3, limiter.bucketCount())

	limiter.cleanupBuckets(time.Now())
	assert.Equal(t, 3, limiter.bucketCount(), "recent buckets survive")

	limiter.cleanupBuckets(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.bucketCount())
}

func TestLimiter_Burst(t *testing.T) {
	cfg := testConfig(1000)
	cfg.EndpointConfigs = []EndpointConfig{{Path: "/burst", Method: "GET", Limit: 60, Window: time.Hour, Burst: 2}}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	a, _ := limiter.Allow("c", "/burst", "GET")
	b, _ := limiter.Allow("c", "/burst", "GET")
	c, _ := limiter.Allow("c", "/burst", "GET")
	assert.True(t, a)
	assert.True(t, b)
	assert.False(t, c)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	limiter.Stop()

	allowed, _ := limiter.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}
