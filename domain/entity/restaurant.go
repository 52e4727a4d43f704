package entity

import "time"

// Restaurant 餐厅帖子数据库模型 (PostgreSQL)
// RestaurantID 是对外暴露的业务 ID（UUID），ID 仅作数据库自增主键，
// 同一 created_at 下用它保证列表顺序确定
type Restaurant struct {
	ID           uint      `gorm:"primaryKey"`
	RestaurantID string    `gorm:"uniqueIndex;size:64"`
	UserID       string    `gorm:"index;size:64"` // Clerk user_id，创建后不可变
	Title        string    `gorm:"size:200"`
	Description  string    `gorm:"size:500"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}
