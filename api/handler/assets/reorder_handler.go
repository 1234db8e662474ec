package assets

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	repoAssets "github.com/dichfoto/dichfoto/database/repo/assets"
	"github.com/gin-gonic/gin"
)

type reorderRequest struct {
	AssetIDs []uint `json:"asset_ids" binding:"required,min=1"`
}

// ReorderAssetsHandler 按给定的 ID 顺序重排相册内的照片
func (h *Handler) ReorderAssetsHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id", "Invalid album ID format")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Reorder(c.Request.Context(), albumID, req.AssetIDs); err != nil {
		if errors.Is(err, repoAssets.ErrAssetNotInAlbum) {
			common.RespondError(c, http.StatusBadRequest, "Asset list does not match album contents")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to reorder assets")
		return
	}

	common.RespondSuccessMessage(c, "Assets reordered", nil)
}

type visibilityRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// UpdateVisibilityHandler 设置照片的隐藏状态
func (h *Handler) UpdateVisibilityHandler(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id", "Invalid asset ID format")
	if !ok {
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SetHidden(c.Request.Context(), assetID, *req.Hidden); err != nil {
		if errors.Is(err, repoAssets.ErrAssetNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update asset visibility")
		return
	}

	common.RespondSuccessMessage(c, "Asset visibility updated", nil)
}
