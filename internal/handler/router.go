package handler

import (
	"islamicapp/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	// 设置 gin 为发布模式（减少日志输出）
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 注册中间件
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))

	// 创建处理器
	h := NewHandler(db, rdb, cfg)

	authRequired := JWTAuthMiddleware(h.authService)

	// API 路由组
	api := r.Group("/api")
	{
		// 账号相关
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/refresh", h.Refresh)

			auth.GET("/profile", authRequired, h.GetProfile)
			auth.PUT("/profile", authRequired, h.UpdateProfile)
			auth.POST("/change-password", authRequired, h.ChangePassword)
		}

		// 赞珠计数
		tasbeh := api.Group("/tasbeh", authRequired)
		{
			tasbeh.GET("/phrases", h.GetPhrases)
			tasbeh.POST("/count", h.IncrementCount)
			tasbeh.POST("/reset", h.ResetCount)
			tasbeh.GET("/statistics", h.GetStatistics)
			tasbeh.GET("/export", h.ExportData)
		}

		// 用户数据
		user := api.Group("/user", authRequired)
		{
			user.GET("/profile", h.GetUserProfile)
			user.GET("/phrases", h.GetUserPhrases)
			user.POST("/phrases", h.AddUserPhrase)
			user.DELETE("/phrases/:id", h.DeleteUserPhrase)
			user.GET("/preferences", h.GetPreferences)
			user.PUT("/preferences", h.UpdatePreferences)
			user.GET("/location", h.GetLocation)
			user.PUT("/location", h.UpdateLocation)
			user.GET("/reading-stats", h.GetReadingStats)
			user.PUT("/reading-stats", h.UpdateReadingStats)
			user.GET("/dashboard", h.GetDashboard)
		}

		// 第三方内容代理，无需登录
		content := api.Group("/content")
		{
			content.GET("/quran/surahs", h.GetSurahs)
			content.GET("/quran/surah/:number", h.GetSurah)
			content.GET("/prayer-times", h.GetPrayerTimes)
		}
	}

	// 健康检查
	r.GET("/health", h.Health)

	return r
}
