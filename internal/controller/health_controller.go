package controller

import (
	"weblearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// HealthController 健康检查。远端库或缓存未配置不算故障，按降级组件上报。
type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary 健康检查
// @Description 检查服务与各组件状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	dbStatus := "not_configured"
	if c.DB != nil {
		dbStatus = "up"
		if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
	}

	cacheStatus := "not_configured"
	if c.Redis != nil {
		cacheStatus = "up"
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			cacheStatus = "down"
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		},
	})
}
