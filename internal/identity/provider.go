package identity

import (
	"context"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ========== 身份服务抽象 ==========
// 用户档案完全由外部身份服务（Clerk）持有，本服务只读、不落库
// 抽成接口方便在 UseCase 测试中替换成 Mock

// Profile 对外暴露的公开用户档案
// 只挑选可以下发给客户端的字段（对齐 Clerk 公开信息）
type Profile struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL string  `json:"profileImageUrl"`
}

// Provider 身份查询接口
type Provider interface {
	// GetUser 按 user_id 查询单个档案
	// 不存在时返回 (nil, nil)，调用方需处理
	GetUser(ctx context.Context, userID string) (*Profile, error)

	// GetUsers 批量查询档案
	// limit 限制单次请求的 id 数量上限（与列表页大小一致，取 10）
	// 部分 id 查不到时返回较短的切片，而不是报错
	GetUsers(ctx context.Context, userIDs []string, limit int) ([]Profile, error)
}

// clerkProvider Clerk SDK 实现 Provider 接口
// 依赖 bootstrap.InitClerk 预先注入的全局 API Key
type clerkProvider struct{}

// NewClerkProvider 构造函数
func NewClerkProvider() Provider {
	return &clerkProvider{}
}

// GetUser 单个查询
// 统一走 List 接口：id 不存在时得到空列表，避免依赖 SDK 404 错误的形状
func (p *clerkProvider) GetUser(ctx context.Context, userID string) (*Profile, error) {
	profiles, err := p.GetUsers(ctx, []string{userID}, 1)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// GetUsers 批量查询（一次列表页最多触发一次）
func (p *clerkProvider) GetUsers(ctx context.Context, userIDs []string, limit int) ([]Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	if len(userIDs) > limit {
		userIDs = userIDs[:limit]
	}

	list, err := user.List(ctx, &user.ListParams{
		ListParams: clerk.ListParams{Limit: clerk.Int64(int64(limit))},
		UserIDs:    userIDs,
	})
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(list.Users))
	for _, u := range list.Users {
		profiles = append(profiles, filterUserForClient(u))
	}
	return profiles, nil
}

// filterUserForClient 过滤 Clerk 用户对象，只保留公开字段
// ⚠️ 不要直接把完整的 Clerk User 下发，里面包含邮箱等隐私信息
func filterUserForClient(u *clerk.User) Profile {
	imageURL := ""
	if u.ImageURL != nil {
		imageURL = *u.ImageURL
	}
	return Profile{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: imageURL,
	}
}
