package shares

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dichfoto/dichfoto/api/common"
	"github.com/dichfoto/dichfoto/database/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCreateShareRequest_Binding(t *testing.T) {
	router := setupTestRouter(t)
	router.POST("/test", func(c *gin.Context) {
		var req createShareRequest
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
			name:       "empty body uses defaults",
			body:       map[string]interface{}{},
			wantStatus: http.StatusOK,
		},
		{
			name: "custom slug with password",
			body: map[string]interface{}{
				"slug":     "wedding-2024",
				"password": "secret",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "expiry date",
			body: map[string]interface{}{
				"expires_at": "2030-01-01T00:00:00Z",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "slug too long",
			body: map[string]interface{}{
				"slug": string(make([]byte, 101)),
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestToShareResponse(t *testing.T) {
	h := NewHandler(nil, "https://dichfoto.com")

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := "argon2id-hash"
	link := &models.ShareLink{
		ID:           7,
		AlbumID:      3,
		Slug:         "trip-2024",
		ExpiresAt:    &expires,
		PasswordHash: &hash,
		AllowZip:     true,
	}

	resp := h.toShareResponse(link)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "https://dichfoto.com/s/trip-2024", resp.URL)
	assert.True(t, resp.Protected)
	assert.True(t, resp.AllowZip)
	assert.Equal(t, &expires, resp.ExpiresAt)
}
