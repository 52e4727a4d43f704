package repository

import "restaurant-go-server/domain/entity"

// RestaurantRepository 餐厅帖子数据仓库接口
type RestaurantRepository interface {
	// Create 插入新帖子（RestaurantID / UserID / Title / Description 由调用方填好）
	// 不做任何校验，校验是 UseCase 层的职责；允许重复标题
	Create(restaurant *entity.Restaurant) error

	// GetByRestaurantID 根据业务 ID 获取帖子
	// 不存在时返回 (nil, nil)，调用方需处理
	GetByRestaurantID(restaurantID string) (*entity.Restaurant, error)

	// ListRecent 按创建时间倒序返回最多 limit 条帖子
	// 同一时间戳按插入顺序倒序（主键兜底），保证结果确定
	ListRecent(limit int) ([]entity.Restaurant, error)
}
