package assets

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	repoAssets "github.com/dichfoto/dichfoto/database/repo/assets"
	"github.com/gin-gonic/gin"
)

// DeleteAssetHandler 删除照片，引用它作封面的相册会被置空封面
func (h *Handler) DeleteAssetHandler(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id", "Invalid asset ID format")
	if !ok {
		return
	}

	if err := h.svc.DeleteAsset(c.Request.Context(), assetID); err != nil {
		if errors.Is(err, repoAssets.ErrAssetNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	common.RespondSuccessMessage(c, "Asset deleted", nil)
}
