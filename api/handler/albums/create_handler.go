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

type createAlbumRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Photographer    string     `json:"photographer" binding:"max=255"`
	PhotographerURL string     `json:"photographer_url" binding:"max=500"`
	EventDate       *time.Time `json:"event_date"`
}

// CreateAlbumHandler 创建相册
func (h *Handler) CreateAlbumHandler(c *gin.Context) {
	var req createAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	album, err := h.svc.CreateAlbum(svcAlbums.CreateInput{
		Title:           req.Title,
		Photographer:    req.Photographer,
		PhotographerURL: req.PhotographerURL,
		EventDate:       req.EventDate,
	})
	if err != nil {
		if errors.Is(err, repoAlbums.ErrTitleRequired) {
			common.RespondError(c, http.StatusBadRequest, "Album title is required")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to create album")
		return
	}

	common.RespondCreated(c, album)
}
