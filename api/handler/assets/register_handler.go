package assets

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	repoAssets "github.com/dichfoto/dichfoto/database/repo/assets"
	svcAssets "github.com/dichfoto/dichfoto/internal/assets"
	"github.com/gin-gonic/gin"
)

type registerAssetRequest struct {
	OriginalName string `json:"original_name" binding:"required,max=255"`
	MimeType     string `json:"mime_type" binding:"max=100"`
	Size         int64  `json:"size" binding:"min=0"`
	Width        *int   `json:"width"`
	Height       *int   `json:"height"`
	Lqip         string `json:"lqip"`
	SortOrder    *int   `json:"sort_order"`
}

// RegisterAssetHandler 在相册中登记一张上传的照片
func (h *Handler) RegisterAssetHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id", "Invalid album ID format")
	if !ok {
		return
	}

	var req registerAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.svc.RegisterUpload(c.Request.Context(), albumID, svcAssets.RegisterInput{
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		Width:        req.Width,
		Height:       req.Height,
		Lqip:         req.Lqip,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, repoAssets.ErrAlbumNotFound) {
			common.RespondError(c, http.StatusBadRequest, "Album does not exist")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to register asset")
		return
	}

	common.RespondCreated(c, asset)
}

// ListAssetsHandler 获取相册内的照片，按 sort_order 升序
func (h *Handler) ListAssetsHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id", "Invalid album ID format")
	if !ok {
		return
	}

	includeHidden := c.Query("include_hidden") == "true"
	list, err := h.svc.ListByAlbum(albumID, includeHidden)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list assets")
		return
	}

	common.RespondSuccess(c, list)
}
