package assets

import (
	"errors"
	"net/http"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/database/models"
	repoAssets "github.com/dichfoto/dichfoto/database/repo/assets"
	"github.com/gin-gonic/gin"
)

// ApplyVariantsHandler 整体覆盖照片的派生规格集合。
// 请求体中缺失的规格会被清空。
func (h *Handler) ApplyVariantsHandler(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id", "Invalid asset ID format")
	if !ok {
		return
	}

	var variants models.VariantSet
	if err := c.ShouldBindJSON(&variants); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.svc.ApplyVariants(c.Request.Context(), assetID, variants)
	if err != nil {
		if errors.Is(err, repoAssets.ErrAssetNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to apply variants")
		return
	}

	common.RespondSuccess(c, asset)
}
