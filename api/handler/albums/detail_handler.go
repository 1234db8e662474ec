package albums

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dichfoto/dichfoto/api/common"
	repoAlbums "github.com/dichfoto/dichfoto/database/repo/albums"
	"github.com/gin-gonic/gin"
)

// parseAlbumID 解析路径中的相册 ID
func parseAlbumID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid album ID format")
		return 0, false
	}
	return uint(id), true
}

// GetAlbumDetailHandler 获取相册详情及其照片
func (h *Handler) GetAlbumDetailHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		return
	}

	album, err := h.svc.GetAlbumWithAssets(c.Request.Context(), albumID)
	if err != nil {
		if errors.Is(err, repoAlbums.ErrAlbumNotFound) {
			common.RespondError(c, http.StatusNotFound, "Album not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to get album")
		return
	}

	common.RespondSuccess(c, album)
}
