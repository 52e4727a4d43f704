package identity

import (
	"context"
	"sync"
	"time"
)

// ========== 档案读穿缓存 ==========
// 列表页每次都要查作者档案，Clerk 接口有配额，这里加一层进程内 TTL 缓存
// 缓存只是加速层：档案的生命周期仍完全归 Clerk 所有，
// Webhook 收到 user.updated / user.deleted 时主动驱逐对应条目

type cacheEntry struct {
	profile  Profile
	expireAt time.Time
}

// Cache 装饰任意 Provider，按 user_id 做读穿缓存
type Cache struct {
	provider Provider

	mu      sync.RWMutex
	entries map[string]*cacheEntry

	ttl          time.Duration
	cleanupEvery time.Duration
}

// NewCache 构造函数
// ttl: 条目有效期；cleanupEvery: 后台清理周期，<=0 表示不启动清理协程
func NewCache(provider Provider, ttl, cleanupEvery time.Duration) *Cache {
	return &Cache{
		provider:     provider,
		entries:      make(map[string]*cacheEntry),
		ttl:          ttl,
		cleanupEvery: cleanupEvery,
	}
}

// GetUser 单个查询（先查缓存，未命中回源）
func (c *Cache) GetUser(ctx context.Context, userID string) (*Profile, error) {
	if p, ok := c.lookup(userID); ok {
		return p, nil
	}

	profile, err := c.provider.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		c.store(*profile)
	}
	// ⚠️ 否定结果不缓存：用户刚注册时 Webhook 可能晚于首次查询到达
	return profile, nil
}

// GetUsers 批量查询：命中的直接取缓存，未命中的合并成一次回源请求
func (c *Cache) GetUsers(ctx context.Context, userIDs []string, limit int) ([]Profile, error) {
	if len(userIDs) > limit {
		userIDs = userIDs[:limit]
	}

	profiles := make([]Profile, 0, len(userIDs))
	var missing []string
	for _, id := range userIDs {
		if p, ok := c.lookup(id); ok {
			profiles = append(profiles, *p)
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.provider.GetUsers(ctx, missing, limit)
		if err != nil {
			return nil, err
		}
		for _, p := range fetched {
			c.store(p)
			profiles = append(profiles, p)
		}
	}

	return profiles, nil
}

// Evict 驱逐指定用户的缓存条目（Clerk Webhook 调用）
func (c *Cache) Evict(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// StartJanitor 启动后台协程，定期清理过期条目
// 取消 ctx 即停止
func (c *Cache) StartJanitor(ctx context.Context) {
	if c.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(c.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.cleanup()
			}
		}
	}()
}

func (c *Cache) lookup(userID string) (*Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.entries[userID]
	if !ok || time.Now().After(ent.expireAt) {
		return nil, false
	}
	p := ent.profile
	return &p, true
}

func (c *Cache) store(profile Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[profile.ID] = &cacheEntry{
		profile:  profile,
		expireAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, ent := range c.entries {
		if now.After(ent.expireAt) {
			delete(c.entries, id)
		}
	}
}
