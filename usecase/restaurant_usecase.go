package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"restaurant-go-server/domain/entity"
	domainErrors "restaurant-go-server/domain/errors"
	"restaurant-go-server/domain/repository"
	"restaurant-go-server/internal/identity"
	"restaurant-go-server/internal/ratelimit"

	"github.com/google/uuid"
)

// ================= 业务常量 =================

const (
	// ListPageSize 列表页大小，同时也是批量查档案的 id 上限
	ListPageSize = 10

	// 标题 / 描述长度约束（按字符计，不是字节）
	titleMaxLen       = 200
	descriptionMaxLen = 500
)

// RestaurantWithAuthor 帖子 + 作者档案的组合结果
// 配对关系在读取时按 userId 现算，从不落库
type RestaurantWithAuthor struct {
	Restaurant entity.Restaurant `json:"restaurant"`
	Author     identity.Profile  `json:"user"`
}

// RestaurantUseCase 餐厅帖子业务逻辑层
// 组合 Store + 身份查询 + 限流器，三个依赖全部走接口注入，方便测试替换
type RestaurantUseCase struct {
	repo    repository.RestaurantRepository
	users   identity.Provider
	limiter ratelimit.Limiter
}

// NewRestaurantUseCase 构造函数，依赖注入
func NewRestaurantUseCase(
	repo repository.RestaurantRepository,
	users identity.Provider,
	limiter ratelimit.Limiter,
) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo, users: users, limiter: limiter}
}

// GetAll 获取最近的帖子列表（最多 10 条，新的在前），并拼上作者档案
// 空表返回空切片，不算错误
func (uc *RestaurantUseCase) GetAll(ctx context.Context) ([]RestaurantWithAuthor, error) {
	restaurants, err := uc.repo.ListRecent(ListPageSize)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return []RestaurantWithAuthor{}, nil
	}

	// 去重后批量查档案，一页最多一次身份服务调用
	userIDs := distinctUserIDs(restaurants)
	profiles, err := uc.users.GetUsers(ctx, userIDs, ListPageSize)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]identity.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	result := make([]RestaurantWithAuthor, 0, len(restaurants))
	for _, r := range restaurants {
		author, ok := byID[r.UserID]
		if !ok {
			// ⚠️ 帖子作者在身份服务里不存在 = 数据完整性被破坏
			// 整个请求失败，绝不把这条帖子悄悄过滤掉
			return nil, domainErrors.ErrAuthorNotFound
		}
		result = append(result, RestaurantWithAuthor{Restaurant: r, Author: author})
	}
	return result, nil
}

// GetByID 获取单个帖子及其作者档案
func (uc *RestaurantUseCase) GetByID(ctx context.Context, restaurantID string) (*RestaurantWithAuthor, error) {
	restaurant, err := uc.repo.GetByRestaurantID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domainErrors.ErrRestaurantNotFound
	}

	profiles, err := uc.users.GetUsers(ctx, []string{restaurant.UserID}, 1)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domainErrors.ErrAuthorNotFound
	}

	return &RestaurantWithAuthor{Restaurant: *restaurant, Author: profiles[0]}, nil
}

// Create 以 userID 的身份创建新帖子
// 顺序：认证检查 → 字段校验 → 限流 → 落库，任何一步失败都不产生部分写入
// 返回值不带作者档案（调用方就是作者本人）
func (uc *RestaurantUseCase) Create(ctx context.Context, userID, title, description string) (*entity.Restaurant, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}

	if err := validateField("title", title, titleMaxLen); err != nil {
		return nil, err
	}
	if err := validateField("description", description, descriptionMaxLen); err != nil {
		return nil, err
	}

	allowed, err := uc.limiter.Allow(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainErrors.ErrRateLimited
	}

	restaurant := &entity.Restaurant{
		RestaurantID: uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Description:  description,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// validateField 长度校验（1 ~ max 个字符）
func validateField(field, value string, max int) error {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return domainErrors.NewValidationError(field, "must not be empty")
	}
	if n > max {
		return domainErrors.NewValidationError(field, "too long")
	}
	return nil
}

// distinctUserIDs 提取去重后的作者 id，保持首次出现的顺序
func distinctUserIDs(restaurants []entity.Restaurant) []string {
	seen := make(map[string]struct{}, len(restaurants))
	ids := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}
	return ids
}
