package albums

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	repoAlbums "github.com/dichfoto/dichfoto/database/repo/albums"
	"github.com/gin-gonic/gin"
)

// DeleteAlbumHandler 删除相册及其全部照片与分享链接
func (h *Handler) DeleteAlbumHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAlbum(c.Request.Context(), albumID); err != nil {
		if errors.Is(err, repoAlbums.ErrAlbumNotFound) {
			common.RespondError(c, http.StatusNotFound, "Album not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}

	common.RespondSuccessMessage(c, "Album deleted", nil)
}
