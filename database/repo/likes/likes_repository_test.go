package likes

import (
	"fmt"
	"testing"

	"github.com/dichfoto/dichfoto/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Like{})
	require.NoError(t, err)

	return db
}

func uintPtr(u uint) *uint { return &u }

func TestRepository_Toggle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	// 首次点赞
	liked, err := repo.Toggle("/share/trip-2024/photo1", nil)
	assert.NoError(t, err)
	assert.True(t, liked)

	// 再次切换取消
	liked, err = repo.Toggle("/share/trip-2024/photo1", nil)
	assert.NoError(t, err)
	assert.False(t, liked)

	// 第三次恢复
	liked, err = repo.Toggle("/share/trip-2024/photo1", nil)
	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestRepository_Toggle_EmptyURL(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Toggle("", nil)
	assert.ErrorIs(t, err, ErrURLRequired)
}

func TestRepository_Toggle_PerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	url := "/share/trip-2024/photo2"

	// 不同用户互不影响
	liked, err := repo.Toggle(url, uintPtr(1))
	assert.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.Toggle(url, uintPtr(2))
	assert.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.Toggle(url, uintPtr(1))
	assert.NoError(t, err)
	assert.False(t, liked)

	count, err := repo.Count(url)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 3; i++ {
		_, err := repo.Toggle("/share/a/p1", uintPtr(uint(i+1)))
		require.NoError(t, err)
	}
	_, err := repo.Toggle("/share/a/p2", uintPtr(1))
	require.NoError(t, err)

	count, err := repo.Count("/share/a/p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.Count("/share/a/p2")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.Count("/share/a/none")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_CountAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Toggle("/share/a/p1", uintPtr(1))
	require.NoError(t, err)
	_, err = repo.Toggle("/share/a/p2", uintPtr(1))
	require.NoError(t, err)
	// 取消其中一个
	_, err = repo.Toggle("/share/a/p2", uintPtr(1))
	require.NoError(t, err)

	count, err := repo.CountAll()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Count_OnlyLikedRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	url := "/share/b/p1"
	_, err := repo.Toggle(url, nil)
	require.NoError(t, err)
	_, err = repo.Toggle(url, nil)
	require.NoError(t, err)

	// 取消后行仍在（liked=false），计数为零
	var rows int64
	db.Model(&models.Like{}).Where("url = ?", url).Count(&rows)
	assert.Equal(t, int64(1), rows)

	count, err := repo.Count(url)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
