package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis 创建 Redis 客户端（限流计数器的共享存储）
// url 格式: redis://:password@localhost:6379/0
func NewRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("❌ REDIS_URL 格式无效: %v", err)
	}

	rdb := redis.NewClient(opts)

	// 启动时做一次连通性检查，尽早暴露配置问题
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis 连接失败: %v", err)
	}

	log.Println("✅ Redis 连接成功")
	return rdb
}
