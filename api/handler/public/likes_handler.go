package public

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/cache"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/database/repo/likes"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 点赞计数缓存的有效期，计数被切换时立即失效
const likeCountTTL = 30 * time.Second

// LikesHandler 点赞处理器
type LikesHandler struct {
	repo           *likes.Repository
	cache          types.Cache
	enableSessions bool
}

// NewLikesHandler 创建新的点赞处理器
func NewLikesHandler(repo *likes.Repository, cacheProvider types.Cache, enableSessions bool) *LikesHandler {
	return &LikesHandler{repo: repo, cache: cacheProvider, enableSessions: enableSessions}
}

type toggleLikeRequest struct {
	URL string `json:"url" binding:"required,max=500"`
}

// sessionUserID 从会话中取匿名用户 ID，没有则分配一个
func (h *LikesHandler) sessionUserID(c *gin.Context) *uint {
	if !h.enableSessions {
		return nil
	}

	session := sessions.Default(c)
	if v := session.Get("uid"); v != nil {
		if id, ok := v.(uint); ok {
			return &id
		}
	}

	// 随机分配一个匿名标识并写回会话
	id := uint(uuid.New().ID())
	session.Set("uid", id)
	_ = session.Save()
	return &id
}

// ToggleLikeHandler 切换点赞状态
func (h *LikesHandler) ToggleLikeHandler(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	liked, err := h.repo.Toggle(req.URL, h.sessionUserID(c))
	if err != nil {
		if errors.Is(err, likes.ErrURLRequired) {
			common.RespondError(c, http.StatusBadRequest, "URL is required")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	// 计数变了，旧缓存作废
	if err := h.cache.Delete(c.Request.Context(), cache.LikeCount.Build(req.URL)); err != nil {
		log.Printf("[Likes] Failed to invalidate like count %s: %v", req.URL, err)
	}

	count, err := h.countLikes(c, req.URL)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to count likes")
		return
	}

	common.RespondSuccess(c, gin.H{
		"liked": liked,
		"count": count,
	})
}

// CountLikesHandler 获取某个 URL 的点赞计数
func (h *LikesHandler) CountLikesHandler(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		common.RespondError(c, http.StatusBadRequest, "url query parameter is required")
		return
	}

	count, err := h.countLikes(c, url)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to count likes")
		return
	}

	common.RespondSuccess(c, gin.H{
		"url":   url,
		"count": count,
	})
}

// countLikes 先查缓存再落库，回填短暂缓存
func (h *LikesHandler) countLikes(c *gin.Context, url string) (int64, error) {
	ctx := c.Request.Context()
	key := cache.LikeCount.Build(url)

	var cached int64
	if err := h.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	count, err := h.repo.Count(url)
	if err != nil {
		return 0, err
	}

	if err := h.cache.Set(ctx, key, count, likeCountTTL); err != nil {
		log.Printf("[Likes] Failed to cache like count %s: %v", url, err)
	}
	return count, nil
}
