package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ========== 写入限流 ==========
// 创建帖子按 user_id 限流：窗口 1 分钟，容量 3 次
// 计数器放在共享的 Redis 里，多实例部署时对同一 user_id 的并发请求
// 由 Redis 的原子 INCR 串行化，不会丢更新

// Limiter 限流决策接口
type Limiter interface {
	// Allow 判定 key（user_id）当前是否允许再执行一次写入
	// 无论放行还是拒绝，每次调用都计入统计
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter 固定窗口计数器实现
// 算法：窗口编号拼进 key，INCR 后与容量比较；key 随窗口过期自动消失，
// 旧窗口计数老化后用户自然解锁，不会被永久锁死
type RedisLimiter struct {
	rdb      *redis.Client
	prefix   string
	window   time.Duration
	capacity int64
}

// NewRedisLimiter 构造函数
func NewRedisLimiter(rdb *redis.Client, capacity int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:      rdb,
		prefix:   "ratelimit:create",
		window:   window,
		capacity: capacity,
	}
}

// Allow 固定窗口判定
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := time.Now().UnixNano() / int64(l.window)
	counterKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	// INCR + EXPIRE 放进同一个 pipeline，少一次往返
	// INCR 本身原子，跨实例也不会超发（容量边界上最多多读不多写）
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	allowed := incr.Val() <= l.capacity

	// 统计尽力而为，失败不影响限流决策
	l.recordStats(ctx, allowed)

	return allowed, nil
}

// recordStats 记录放行/拒绝计数（总量 + 分钟桶）
// 总量累计不过期，分钟桶保留 24 小时供分析
func (l *RedisLimiter) recordStats(ctx context.Context, allowed bool) {
	field := "denied"
	if allowed {
		field = "allowed"
	}

	minute := time.Now().UTC().Format("200601021504")
	bucketKey := l.prefix + ":stats:minute:" + minute

	pipe := l.rdb.Pipeline()
	pipe.HIncrBy(ctx, l.prefix+":stats:total", field, 1)
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	pipe.Expire(ctx, bucketKey, 24*time.Hour)
	_, _ = pipe.Exec(ctx)
}
