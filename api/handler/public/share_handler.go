package public

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	repoShares "github.com/dichfoto/dichfoto/database/repo/shares"
	svcShares "github.com/dichfoto/dichfoto/internal/shares"
	"github.com/gin-gonic/gin"
)

// Handler 公开访问处理器
type Handler struct {
	shares *svcShares.Service
}

// NewHandler 创建新的公开访问处理器
func NewHandler(shares *svcShares.Service) *Handler {
	return &Handler{shares: shares}
}

// GetShareHandler 按 slug 解析公开分享页。
// 带密码的分享通过 X-Share-Password 头提供密码。
func (h *Handler) GetShareHandler(c *gin.Context) {
	slug := c.Param("slug")
	password := c.GetHeader("X-Share-Password")

	resolved, err := h.shares.Resolve(c.Request.Context(), slug, password)
	if err != nil {
		switch {
		case errors.Is(err, repoShares.ErrShareNotFound):
			common.RespondError(c, http.StatusNotFound, "Share link not found")
		case errors.Is(err, svcShares.ErrShareExpired):
			common.RespondError(c, http.StatusGone, "Share link has expired")
		case errors.Is(err, svcShares.ErrPasswordRequired):
			common.RespondError(c, http.StatusUnauthorized, "Password required")
		case errors.Is(err, svcShares.ErrWrongPassword):
			common.RespondError(c, http.StatusForbidden, "Wrong password")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to resolve share link")
		}
		return
	}

	common.RespondSuccess(c, resolved)
}
