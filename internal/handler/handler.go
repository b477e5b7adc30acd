package handler

import (
	"context"
	"net/http"
	"time"

	"islamicapp/internal/config"
	"islamicapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	authService    *service.AuthService
	tasbehService  *service.TasbehService
	userService    *service.UserService
	contentService *service.ContentService
	db             *gorm.DB
	rdb            *redis.Client
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		authService:    service.NewAuthService(db, cfg),
		tasbehService:  service.NewTasbehService(db),
		userService:    service.NewUserService(db),
		contentService: service.NewContentService(&cfg.Content, rdb),
		db:             db,
		rdb:            rdb,
	}
}

// Health 存活探针：数据库必须可达，Redis 状态只做报告
// GET /health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "unhealthy",
			"database": "down",
		})
		return
	}

	redisStatus := "disabled"
	if h.rdb != nil {
		redisStatus = "up"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"redis":    redisStatus,
	})
}
