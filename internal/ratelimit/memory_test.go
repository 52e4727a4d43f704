package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ========== MemoryLimiter 单元测试 ==========

// TestMemoryLimiter_CapacityPerKey 同一 key 连续 3 次放行，第 4 次拒绝
func TestMemoryLimiter_CapacityPerKey(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user-1")
		assert.NoError(t, err)
		assert.True(t, allowed, "第 %d 次应放行", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user-1")
	assert.NoError(t, err)
	assert.False(t, allowed, "第 4 次应被拒绝")
}

// TestMemoryLimiter_KeysIndependent 不同 key 互不影响
// user-1 被限流时，user-2 在同一窗口内仍可写入
func TestMemoryLimiter_KeysIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		limiter.Allow(ctx, "user-1")
	}

	allowed, err := limiter.Allow(ctx, "user-2")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

// TestMemoryLimiter_RecoversAfterWindow 计数老化后用户恢复写入资格，不会被永久锁死
func TestMemoryLimiter_RecoversAfterWindow(t *testing.T) {
	// 缩短窗口让测试跑得快：3 次 / 150ms，一个令牌约 50ms 补回
	limiter := NewMemoryLimiter(3, 150*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		limiter.Allow(ctx, "user-1")
	}
	allowed, _ := limiter.Allow(ctx, "user-1")
	assert.False(t, allowed)

	time.Sleep(80 * time.Millisecond)

	allowed, err := limiter.Allow(ctx, "user-1")
	assert.NoError(t, err)
	assert.True(t, allowed, "窗口推进后应重新放行")
}

// TestMemoryLimiter_Cleanup 长期不活跃的 key 会被清理协程回收
func TestMemoryLimiter_Cleanup(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	limiter.idleTTL = 10 * time.Millisecond

	limiter.Allow(context.Background(), "user-1")

	limiter.mu.Lock()
	assert.Len(t, limiter.entries, 1)
	limiter.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	limiter.cleanup()

	limiter.mu.Lock()
	assert.Empty(t, limiter.entries)
	limiter.mu.Unlock()
}
