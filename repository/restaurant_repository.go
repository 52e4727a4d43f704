package repository

import (
	"errors"

	"restaurant-go-server/domain/entity"
	domainRepo "restaurant-go-server/domain/repository"

	"gorm.io/gorm"
)

// restaurantRepository GORM 实现 RestaurantRepository 接口
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository 构造函数
func NewRestaurantRepository(db *gorm.DB) domainRepo.RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Create 插入新帖子
// 单条 INSERT 本身是原子的，并发写入不会被 ListRecent 读到半行
func (r *restaurantRepository) Create(restaurant *entity.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// GetByRestaurantID 根据业务 ID 查询帖子
func (r *restaurantRepository) GetByRestaurantID(restaurantID string) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	err := r.db.Where("restaurant_id = ?", restaurantID).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // 返回 nil 表示不存在，调用方需处理
	}
	return &restaurant, err
}

// ListRecent 按创建时间倒序取最多 limit 条
// ⚠️ 关键：id DESC 兜底排序，同一 created_at 下按插入顺序倒序，结果确定
func (r *restaurantRepository) ListRecent(limit int) ([]entity.Restaurant, error) {
	var restaurants []entity.Restaurant
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&restaurants).Error
	return restaurants, err
}
