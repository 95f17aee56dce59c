package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/interface/http/dto"
)

// Checker 依赖健康检查
type Checker func(ctx context.Context) error

// HealthHandler 存活与就绪检查
type HealthHandler struct {
	checks  map[string]Checker
	timeout time.Duration
}

// NewHealthHandler 检查MySQL和Redis
func NewHealthHandler(db *gorm.DB, rdb *goredis.Client) *HealthHandler {
	return NewHealthHandlerWithChecks(map[string]Checker{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
}

// NewHealthHandlerWithChecks 自定义检查项
func NewHealthHandlerWithChecks(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Ping 存活检查
// @Summary      存活检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health 依赖检查，任一失败返回503
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Services[name] = "down: " + err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
