package core

import (
	"net/http"
	"time"

	"github.com/dichfoto/dichfoto/config"
	"github.com/dichfoto/dichfoto/database"
	"github.com/dichfoto/dichfoto/internal/app"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler 健康检查处理器
type HealthHandler struct {
	container *app.Container
}

// NewHealthHandler 创建新的健康检查处理器
func NewHealthHandler(container *app.Container) *HealthHandler {
	return &HealthHandler{container: container}
}

// Handle 返回服务与依赖的健康状态
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": h.checkDatabase(),
		"cache":    h.checkCache(),
	}

	httpStatus := http.StatusOK
	status := "ok"
	for _, result := range checks {
		if s, ok := result.(string); ok && s != "ok" {
			httpStatus = http.StatusServiceUnavailable
			status = "degraded"
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  status,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks":  checks,
	})
}

func (h *HealthHandler) checkDatabase() string {
	if h.container == nil || h.container.DB() == nil {
		return "not initialized"
	}
	if err := database.Ping(h.container.DB()); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkCache() string {
	if h.container == nil || h.container.Cache() == nil {
		return "not initialized"
	}
	return "ok"
}
