package dashboard

import (
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	svcDashboard "github.com/dichfoto/dichfoto/internal/dashboard"
	"github.com/gin-gonic/gin"
)

// Handler 后台概览处理器
type Handler struct {
	svc *svcDashboard.Service
}

// NewHandler 创建新的后台概览处理器
func NewHandler(svc *svcDashboard.Service) *Handler {
	return &Handler{svc: svc}
}

// GetStatsHandler 获取各实体的总数统计
func (h *Handler) GetStatsHandler(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to collect stats")
		return
	}

	common.RespondSuccess(c, stats)
}
