package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- 测试请求 DTO 绑定 ---

func TestRegisterAssetRequest_Binding(t *testing.T) {
	router := setupTestRouter(t)
	router.POST("/test", func(c *gin.Context) {
		var req registerAssetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, req)
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid request",
			body: map[string]interface{}{
				"original_name": "vacation.jpg",
				"mime_type":     "image/jpeg",
				"size":          2048,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing original name",
			body: map[string]interface{}{
				"mime_type": "image/jpeg",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative size",
			body: map[string]interface{}{
				"original_name": "x.jpg",
				"size":          -1,
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/test", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestReorderRequest_Binding(t *testing.T) {
	router := setupTestRouter(t)
	router.POST("/test", func(c *gin.Context) {
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, req)
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name:       "valid list",
			body:       map[string]interface{}{"asset_ids": []uint{3, 1, 2}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty list",
			body:       map[string]interface{}{"asset_ids": []uint{}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing field",
			body:       map[string]interface{}{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/test", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestVisibilityRequest_Binding(t *testing.T) {
	router := setupTestRouter(t)
	router.POST("/test", func(c *gin.Context) {
		var req visibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, gin.H{"hidden": *req.Hidden})
	})

	// hidden=false 也必须通过必填校验（指针字段）
	w := postJSON(router, "/test", map[string]interface{}{"hidden": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/test", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
