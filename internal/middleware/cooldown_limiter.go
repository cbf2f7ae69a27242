package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== CooldownLimiter 冷却限流器 ====================

// CooldownLimiter 同一 key 在冷却间隔内只允许执行一次
// 用于阻止同一调用方对同一用例的重复提交
type CooldownLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewCooldownLimiter 创建限流器
func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{now: time.Now}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查并占用
// key: 限流键，如 "user:1:compareAds"
func (r *CooldownLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 释放指定 key（请求入参非法等未真正执行的情况）
func (r *CooldownLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// Sweep 清理已过冷却期的条目，返回清理数量
func (r *CooldownLimiter) Sweep(interval time.Duration) int {
	now := r.now()
	removed := 0
	r.locks.Range(func(key, value any) bool {
		entry := value.(*lockEntry)
		entry.mu.Lock()
		expired := now.Sub(entry.lastTime) >= interval
		entry.mu.Unlock()
		if expired {
			r.locks.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// GenerationKey 生成请求的限流 Key
func GenerationKey(owner, useCase string) string {
	return fmt.Sprintf("%s:%s", owner, useCase)
}
