package bootstrap

import (
	"log"

	"github.com/clerk/clerk-sdk-go/v2"
)

// InitClerk 注入 Clerk API Key（SDK 全局配置）
// 身份档案与登录态完全由 Clerk 托管，本服务不存用户表
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Fatal("❌ 缺少必需环境变量: CLERK_SECRET_KEY")
	}
	clerk.SetKey(secretKey)

	log.Println("✅ Clerk 初始化成功")
}
