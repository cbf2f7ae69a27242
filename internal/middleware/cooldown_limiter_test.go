package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownLimiter_Check(t *testing.T) {
	l := NewCooldownLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	key := GenerationKey("user:1", "compareAds")
	assert.Equal(t, "user:1:compareAds", key)

	assert.True(t, l.Check(key, 10*time.Second).Allowed)

	now = now.Add(4 * time.Second)
	res := l.Check(key, 10*time.Second)
	assert.False(t, res.Allowed)
	assert.Equal(t, 6*time.Second, res.RetryAfter)

	// 不同用例互不影响
	assert.True(t, l.Check(GenerationKey("user:1", "analyzeHook"), 10*time.Second).Allowed)

	now = now.Add(6 * time.Second)
	assert.True(t, l.Check(key, 10*time.Second).Allowed)
}

func TestCooldownLimiter_Reset(t *testing.T) {
	l := NewCooldownLimiter()
	key := GenerationKey("anon:abc", "polishTone")

	assert.True(t, l.Check(key, time.Minute).Allowed)
	assert.False(t, l.Check(key, time.Minute).Allowed)

	l.Reset(key)
	assert.True(t, l.Check(key, time.Minute).Allowed)
}

func TestCooldownLimiter_Sweep(t *testing.T) {
	l := NewCooldownLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Check("a", time.Minute)
	now = now.Add(30 * time.Second)
	l.Check("b", time.Minute)
	now = now.Add(40 * time.Second)

	assert.Equal(t, 1, l.Sweep(time.Minute))
	assert.False(t, l.Check("b", time.Minute).Allowed)
}

func TestCooldownLimiter_Concurrent(t *testing.T) {
	l := NewCooldownLimiter()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("same", time.Hour).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, allowed)
}
