package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-go-server/api/controller"
	"restaurant-go-server/api/route"
	"restaurant-go-server/bootstrap"
	"restaurant-go-server/internal/identity"
	"restaurant-go-server/internal/ratelimit"
	"restaurant-go-server/repository"
	"restaurant-go-server/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	// 发帖限流：每用户每分钟最多 3 次
	createRateLimit  = 3
	createRateWindow = time.Minute

	// 档案缓存有效期与清理周期
	profileCacheTTL     = 5 * time.Minute
	profileCacheCleanup = 2 * time.Minute
)

func main() {
	log.Println("[Server] Restaurant Go Server 启动中...")

	// 加载环境变量
	env := bootstrap.LoadEnv()

	// 初始化 Clerk
	bootstrap.InitClerk(env.ClerkSecretKey)

	// 连接数据库
	db := bootstrap.NewDatabase(env.DatabaseURL)

	// 后台协程统一用这个 ctx 管理，停机时取消
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// 限流器：配了 Redis 用共享计数器（多实例安全），否则退回进程内令牌桶
	var limiter ratelimit.Limiter
	if env.RedisURL != "" {
		rdb := bootstrap.NewRedis(env.RedisURL)
		limiter = ratelimit.NewRedisLimiter(rdb, createRateLimit, createRateWindow)
	} else {
		log.Println("[Server] ⚠️ 未配置 REDIS_URL，限流器退回进程内实现（仅适用于单实例）")
		memLimiter := ratelimit.NewMemoryLimiter(createRateLimit, createRateWindow)
		memLimiter.StartJanitor(appCtx)
		limiter = memLimiter
	}

	// 身份查询：Clerk Provider + 读穿缓存
	profileCache := identity.NewCache(identity.NewClerkProvider(), profileCacheTTL, profileCacheCleanup)
	profileCache.StartJanitor(appCtx)

	// 依赖注入 - Repository 层
	restaurantRepo := repository.NewRestaurantRepository(db)

	// 依赖注入 - UseCase 层
	restaurantUseCase := usecase.NewRestaurantUseCase(restaurantRepo, profileCache, limiter)

	// 依赖注入 - Controller 层
	restaurantController := controller.NewRestaurantController(restaurantUseCase)
	webhookController := controller.NewWebhookController(profileCache, env.WebhookSecret)

	// 配置 Gin 路由
	router := gin.Default()

	// CORS 配置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 设置路由
	route.Setup(router, &route.Dependencies{
		RestaurantController: restaurantController,
		WebhookController:    webhookController,
	})

	// 启动 HTTP 服务
	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[Server] 服务已启动: http://localhost:%s", env.Port)
		log.Printf("[Server] API 端点:")
		log.Printf("   GET  /health               - 健康检查")
		log.Printf("   GET  /api/restaurants      - 最近帖子列表（含作者）")
		log.Printf("   GET  /api/restaurants/:id  - 单个帖子（含作者）")
		log.Printf("   POST /api/restaurants      - 创建帖子（需登录）")
		log.Printf("   POST /webhook/clerk        - Clerk Webhook")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] 服务启动失败: %v", err)
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] 收到停机信号，正在优雅关闭...")
	cancelApp()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[Server] 服务强制关闭: %v", err)
	}

	log.Println("[Server] 服务已安全停止")
}
