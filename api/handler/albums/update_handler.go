package albums

import (
	"errors"
	"net/http"
	"time"

	"github.com/dichfoto/dichfoto/api/common"
	repoAlbums "github.com/dichfoto/dichfoto/database/repo/albums"
	svcAlbums "github.com/dichfoto/dichfoto/internal/albums"
	"github.com/gin-gonic/gin"
)

type updateAlbumRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=255"`
	Photographer    *string    `json:"photographer" binding:"omitempty,max=255"`
	PhotographerURL *string    `json:"photographer_url" binding:"omitempty,max=500"`
	EventDate       *time.Time `json:"event_date"`
}

// UpdateAlbumHandler 更新相册元数据
func (h *Handler) UpdateAlbumHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		return
	}

	var req updateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	album, err := h.svc.UpdateAlbum(c.Request.Context(), albumID, svcAlbums.UpdateInput{
		Title:           req.Title,
		Photographer:    req.Photographer,
		PhotographerURL: req.PhotographerURL,
		EventDate:       req.EventDate,
	})
	if err != nil {
		if errors.Is(err, repoAlbums.ErrAlbumNotFound) {
			common.RespondError(c, http.StatusNotFound, "Album not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update album")
		return
	}

	common.RespondSuccess(c, album)
}

type setCoverRequest struct {
	AssetID *uint `json:"asset_id"`
}

// SetCoverHandler 设置或清除相册封面
func (h *Handler) SetCoverHandler(c *gin.Context) {
	albumID, ok := parseAlbumID(c)
	if !ok {
		return
	}

	var req setCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SetCover(c.Request.Context(), albumID, req.AssetID); err != nil {
		switch {
		case errors.Is(err, repoAlbums.ErrAlbumNotFound):
			common.RespondError(c, http.StatusNotFound, "Album not found")
		case errors.Is(err, repoAlbums.ErrCoverNotInAlbum):
			common.RespondError(c, http.StatusBadRequest, "Cover asset does not belong to this album")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to set album cover")
		}
		return
	}

	common.RespondSuccessMessage(c, "Album cover updated", nil)
}
