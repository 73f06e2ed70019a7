package app

import (
	"weblearn_backend/docs"
	"weblearn_backend/internal/config"
	"weblearn_backend/internal/middleware"
	"weblearn_backend/internal/model"
	"weblearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 题库只读，无需登录
		public.GET("/sections", c.content.ListSections)
		public.GET("/sections/:number", c.content.GetSection)
	}

	// 学员路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		learning := authGroup.Group("/learning")
		{
			learning.POST("/answers", c.learning.SubmitAnswer)
			learning.POST("/completions", c.learning.CompleteSection)
			learning.GET("/my-scores", c.learning.MyScores)
			learning.POST("/sync", c.learning.Sync)
			learning.DELETE("/progress", c.learning.Reset)
		}
	}

	// 管理员路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/stats/sections", c.admin.SectionStats)
		admin.GET("/stats/overall", c.admin.OverallStats)
		admin.GET("/scores", c.admin.ModuleScores)
		admin.GET("/scores/export", c.admin.ExportAllCSV)
		admin.GET("/scores/export/xlsx", c.admin.ExportAllXLSX)
		admin.GET("/scores/:number/export", c.admin.ExportModuleCSV)
	}
}
