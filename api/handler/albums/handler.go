package albums

import (
	svcAlbums "github.com/dichfoto/dichfoto/internal/albums"
)

// Handler 相册处理器
type Handler struct {
	svc     *svcAlbums.Service
	baseURL string
}

// NewHandler 创建新的相册处理器
func NewHandler(svc *svcAlbums.Service, baseURL string) *Handler {
	return &Handler{
		svc:     svc,
		baseURL: baseURL,
	}
}
