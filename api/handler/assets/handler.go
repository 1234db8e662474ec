package assets

import (
	"net/http"
	"strconv"

	"github.com/dichfoto/dichfoto/api/common"
	svcAssets "github.com/dichfoto/dichfoto/internal/assets"
	"github.com/gin-gonic/gin"
)

// Handler 照片处理器
type Handler struct {
	svc *svcAssets.Service
}

// NewHandler 创建新的照片处理器
func NewHandler(svc *svcAssets.Service) *Handler {
	return &Handler{svc: svc}
}

func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}
