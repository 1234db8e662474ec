package albums

import (
	"net/http"
	"strconv"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/database/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AlbumListResponse 相册列表响应
type AlbumListResponse struct {
	Albums   []*models.Album `json:"albums"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ListAlbumsHandler 分页获取相册列表，按创建时间倒序
func (h *Handler) ListAlbumsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	albums, total, err := h.svc.ListAlbums(page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list albums")
		return
	}

	common.RespondSuccess(c, AlbumListResponse{
		Albums:   albums,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
