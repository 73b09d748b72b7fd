package controller

import (
	"context"
	"hiphop_roadmap_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthController struct {
	DB        *gorm.DB
	Redis     *redis.Client
	StartedAt time.Time
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb, StartedAt: time.Now()}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 数据库不可用时返回 503；Redis 为可选组件，只报告状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	if err := c.pingDatabase(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(c.StartedAt).Seconds()),
		"components": gin.H{
			"database": c.DB.Dialector.Name(),
			"redis":    c.redisStatus(pingCtx),
		},
	})
}

func (c *HealthController) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *HealthController) redisStatus(ctx context.Context) string {
	switch {
	case c.Redis == nil:
		return "disabled"
	case c.Redis.Ping(ctx).Err() != nil:
		return "down"
	default:
		return "up"
	}
}
