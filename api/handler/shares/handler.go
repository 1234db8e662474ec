package shares

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/database/models"
	repoShares "github.com/dichfoto/dichfoto/database/repo/shares"
	svcShares "github.com/dichfoto/dichfoto/internal/shares"
	"github.com/gin-gonic/gin"
)

// Handler 分享链接处理器
type Handler struct {
	svc     *svcShares.Service
	baseURL string
}

// NewHandler 创建新的分享链接处理器
func NewHandler(svc *svcShares.Service, baseURL string) *Handler {
	return &Handler{svc: svc, baseURL: baseURL}
}

func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

type createShareRequest struct {
	Slug      string     `json:"slug" binding:"omitempty,max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
	Password  string     `json:"password" binding:"omitempty,max=128"`
	AllowZip  *bool      `json:"allow_zip"`
}

// shareResponse 分享链接响应，附带完整访问 URL
type shareResponse struct {
	ID        uint       `json:"id"`
	AlbumID   uint       `json:"album_id"`
	Slug      string     `json:"slug"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Protected bool       `json:"protected"`
	AllowZip  bool       `json:"allow_zip"`
}

// CreateShareHandler 为相册创建分享链接
func (h *Handler) CreateShareHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id", "Invalid album ID format")
	if !ok {
		return
	}

	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.svc.CreateShareLink(albumID, svcShares.CreateInput{
		Slug:      req.Slug,
		ExpiresAt: req.ExpiresAt,
		Password:  req.Password,
		AllowZip:  req.AllowZip,
	})
	if err != nil {
		switch {
		case errors.Is(err, repoShares.ErrSlugTaken):
			common.RespondError(c, http.StatusConflict, "Share slug is already taken")
		case errors.Is(err, repoShares.ErrAlbumNotFound):
			common.RespondError(c, http.StatusBadRequest, "Album does not exist")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to create share link")
		}
		return
	}

	common.RespondCreated(c, h.toShareResponse(link))
}

// ListSharesHandler 获取相册的全部分享链接
func (h *Handler) ListSharesHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id", "Invalid album ID format")
	if !ok {
		return
	}

	links, err := h.svc.ListByAlbum(albumID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list share links")
		return
	}

	resp := make([]*shareResponse, len(links))
	for i, link := range links {
		resp[i] = h.toShareResponse(link)
	}
	common.RespondSuccess(c, resp)
}

// DeleteShareHandler 删除分享链接
func (h *Handler) DeleteShareHandler(c *gin.Context) {
	shareID, ok := parseIDParam(c, "shareId", "Invalid share ID format")
	if !ok {
		return
	}

	if err := h.svc.DeleteShareLink(c.Request.Context(), shareID); err != nil {
		if errors.Is(err, repoShares.ErrShareNotFound) {
			common.RespondError(c, http.StatusNotFound, "Share link not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete share link")
		return
	}

	common.RespondSuccessMessage(c, "Share link deleted", nil)
}

func (h *Handler) toShareResponse(link *models.ShareLink) *shareResponse {
	return &shareResponse{
		ID:        link.ID,
		AlbumID:   link.AlbumID,
		Slug:      link.Slug,
		URL:       h.baseURL + "/s/" + link.Slug,
		ExpiresAt: link.ExpiresAt,
		Protected: link.HasPassword(),
		AllowZip:  link.AllowZip,
	}
}
