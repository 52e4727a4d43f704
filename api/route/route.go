package route

import (
	"restaurant-go-server/api/controller"
	"restaurant-go-server/api/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由依赖注入结构
type Dependencies struct {
	RestaurantController *controller.RestaurantController
	WebhookController    *controller.WebhookController
}

// Setup 配置所有路由
func Setup(router *gin.Engine, deps *Dependencies) {
	// --- 公开路由 ---

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "restaurant-go-server",
		})
	})

	// Clerk Webhook（使用签名验证，不使用 JWT）
	router.POST("/webhook/clerk", deps.WebhookController.HandleClerkWebhook)

	// --- API 路由 ---
	api := router.Group("/api")
	{
		// 读接口公开，未登录也能浏览
		api.GET("/restaurants", deps.RestaurantController.GetAll)
		api.GET("/restaurants/:id", deps.RestaurantController.GetByID)

		// 写接口需要 Clerk JWT 认证
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("/restaurants", deps.RestaurantController.Create)
		}
	}
}
