package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter 进程内令牌桶实现
// 未配置 REDIS_URL 时的回退方案（本地开发 / 单实例），多实例部署请用 RedisLimiter
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit        rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter 构造函数
// capacity 次 / window：桶容量 capacity，按 capacity/window 的速率补充令牌
func NewMemoryLimiter(capacity int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries:      make(map[string]*memoryEntry),
		limit:        rate.Every(window / time.Duration(capacity)),
		burst:        capacity,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
}

// Allow 实现 Limiter 接口
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return m.limiterFor(key).Allow(), nil
}

// limiterFor 取出（或创建）key 对应的令牌桶
func (m *MemoryLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if ent, ok := m.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(m.limit, m.burst)
	m.entries[key] = &memoryEntry{lim: lim, lastSeen: now}
	return lim
}

// StartJanitor 启动后台协程，定期清理长期不活跃的 key
// 取消 ctx 即停止
func (m *MemoryLimiter) StartJanitor(ctx context.Context) {
	if m.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(m.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.cleanup()
			}
		}
	}()
}

func (m *MemoryLimiter) cleanup() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, ent := range m.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(m.entries, key)
		}
	}
}
