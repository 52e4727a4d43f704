package controller

import (
	"errors"
	"net/http"
	"time"

	"restaurant-go-server/api/middleware"
	domainErrors "restaurant-go-server/domain/errors"
	"restaurant-go-server/usecase"

	"github.com/gin-gonic/gin"
)

// --- 响应结构定义 ---

// RestaurantResponse 单条帖子响应结构
type RestaurantResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RestaurantWithAuthorResponse 帖子 + 作者响应结构
type RestaurantWithAuthorResponse struct {
	Restaurant RestaurantResponse `json:"restaurant"`
	User       AuthorResponse     `json:"user"`
}

// AuthorResponse 作者档案响应结构（只含公开字段）
type AuthorResponse struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL string  `json:"profileImageUrl"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"` // 校验失败时指明字段
}

// --- 控制器定义 ---

// RestaurantController 餐厅帖子 HTTP 控制器
type RestaurantController struct {
	restaurantUseCase *usecase.RestaurantUseCase
}

// NewRestaurantController 创建 RestaurantController 实例
func NewRestaurantController(restaurantUseCase *usecase.RestaurantUseCase) *RestaurantController {
	return &RestaurantController{restaurantUseCase: restaurantUseCase}
}

// GetAll 获取最近帖子列表（公开接口）
// GET /api/restaurants
func (rc *RestaurantController) GetAll(c *gin.Context) {
	items, err := rc.restaurantUseCase.GetAll(c.Request.Context())
	if err != nil {
		// 作者档案缺失属于一致性故障，和依赖不可用一样走 500
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := make([]RestaurantWithAuthorResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toWithAuthorResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID 获取单个帖子（公开接口）
// GET /api/restaurants/:id
func (rc *RestaurantController) GetByID(c *gin.Context) {
	restaurantID := c.Param("id")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id 不能为空"})
		return
	}

	item, err := rc.restaurantUseCase.GetByID(c.Request.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "帖子不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toWithAuthorResponse(*item))
}

// CreateRestaurantRequest 创建帖子请求结构
// 长度约束在 UseCase 层校验（错误里要带字段名），这里只解 JSON
type CreateRestaurantRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create 创建新帖子（需要 Clerk JWT 认证）
// POST /api/restaurants
// 请求体: { "title": "xxx", "description": "xxx" }
func (rc *RestaurantController) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "请求体格式无效"})
		return
	}

	userID := c.GetString(middleware.ContextKeyUserID)

	restaurant, err := rc.restaurantUseCase.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		var validationErr *domainErrors.ValidationError
		switch {
		case errors.Is(err, domainErrors.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "未获取到用户信息"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error: validationErr.Reason,
				Field: validationErr.Field,
			})
		case errors.Is(err, domainErrors.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "发帖太频繁，请稍后再试"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, RestaurantResponse{
		ID:          restaurant.RestaurantID,
		UserID:      restaurant.UserID,
		Title:       restaurant.Title,
		Description: restaurant.Description,
		CreatedAt:   restaurant.CreatedAt,
	})
}

// toWithAuthorResponse 组装帖子 + 作者响应
func toWithAuthorResponse(item usecase.RestaurantWithAuthor) RestaurantWithAuthorResponse {
	return RestaurantWithAuthorResponse{
		Restaurant: RestaurantResponse{
			ID:          item.Restaurant.RestaurantID,
			UserID:      item.Restaurant.UserID,
			Title:       item.Restaurant.Title,
			Description: item.Restaurant.Description,
			CreatedAt:   item.Restaurant.CreatedAt,
		},
		User: AuthorResponse{
			ID:              item.Author.ID,
			FirstName:       item.Author.FirstName,
			LastName:        item.Author.LastName,
			ProfileImageURL: item.Author.ProfileImageURL,
		},
	}
}
