package usecase

import (
	"context"

	"restaurant-go-server/domain/entity"
	"restaurant-go-server/internal/identity"

	"github.com/stretchr/testify/mock"
)

// ========== MockRestaurantRepository ==========
// 实现 repository.RestaurantRepository 接口，用于 RestaurantUseCase 的单元测试

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Create(restaurant *entity.Restaurant) error {
	args := m.Called(restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) GetByRestaurantID(restaurantID string) (*entity.Restaurant, error) {
	args := m.Called(restaurantID)
	// 处理 nil 情况
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) ListRecent(limit int) ([]entity.Restaurant, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Restaurant), args.Error(1)
}

// ========== MockIdentityProvider ==========
// 实现 identity.Provider 接口，替代真实的 Clerk 调用

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, userID string) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockIdentityProvider) GetUsers(ctx context.Context, userIDs []string, limit int) ([]identity.Profile, error) {
	args := m.Called(ctx, userIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Profile), args.Error(1)
}

// ========== MockLimiter ==========
// 实现 ratelimit.Limiter 接口

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
