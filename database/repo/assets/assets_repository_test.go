package assets

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

	err = db.AutoMigrate(&models.Album{}, &models.Asset{}, &models.ShareLink{}, &models.Like{})
	require.NoError(t, err)

	return db
}

func createTestAlbum(t *testing.T, db *gorm.DB, title string) *models.Album {
	album := &models.Album{Title: title}
	require.NoError(t, db.Create(album).Error)
	return album
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- 测试 CreateAsset ---

func TestRepository_CreateAsset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Uploads")

	asset := &models.Asset{
		AlbumID:      album.ID,
		Filename:     "abc123.jpg",
		OriginalName: "vacation.jpg",
		MimeType:     "image/jpeg",
		Size:         2048,
	}

	err := repo.CreateAsset(asset)
	assert.NoError(t, err)
	assert.NotZero(t, asset.ID)
	assert.NotZero(t, asset.CreatedAt)
}

func TestRepository_CreateAsset_AlbumNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	// 指向不存在的相册必须被拒绝
	asset := &models.Asset{
		AlbumID:      999,
		Filename:     "orphan.jpg",
		OriginalName: "orphan.jpg",
	}

	err := repo.CreateAsset(asset)
	assert.ErrorIs(t, err, ErrAlbumNotFound)

	var count int64
	db.Model(&models.Asset{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRepository_CreateAsset_EmptyFilename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Uploads")

	err := repo.CreateAsset(&models.Asset{AlbumID: album.ID})
	assert.ErrorIs(t, err, ErrFilenameRequired)
}

// --- 测试 ListByAlbum ---

func TestRepository_ListByAlbum_OrderedAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Gallery")

	for i, order := range []int{3, 1, 2} {
		o := order
		asset := &models.Asset{
			AlbumID:      album.ID,
			Filename:     fmt.Sprintf("img%d.jpg", i),
			OriginalName: fmt.Sprintf("img%d.jpg", i),
			SortOrder:    &o,
		}
		require.NoError(t, db.Create(asset).Error)
	}
	hidden := &models.Asset{
		AlbumID:      album.ID,
		Filename:     "hidden.jpg",
		OriginalName: "hidden.jpg",
		IsHidden:     true,
	}
	require.NoError(t, db.Create(hidden).Error)

	// 默认不包含隐藏照片，按 sort_order 升序
	visible, err := repo.ListByAlbum(album.ID, false)
	assert.NoError(t, err)
	require.Len(t, visible, 3)
	assert.Equal(t, 1, *visible[0].SortOrder)
	assert.Equal(t, 2, *visible[1].SortOrder)
	assert.Equal(t, 3, *visible[2].SortOrder)

	all, err := repo.ListByAlbum(album.ID, true)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
}

// --- 测试 ApplyVariants ---

func fullVariants() models.VariantSet {
	return models.VariantSet{
		Width:  intPtr(4000),
		Height: intPtr(3000),
		JPG: models.VariantPaths{
			W480:  strPtr("a/480.jpg"),
			W960:  strPtr("a/960.jpg"),
			W1280: strPtr("a/1280.jpg"),
			W1920: strPtr("a/1920.jpg"),
		},
		WebP: models.VariantPaths{
			W480:  strPtr("a/480.webp"),
			W1920: strPtr("a/1920.webp"),
		},
		AVIF: models.VariantPaths{
			W480: strPtr("a/480.avif"),
		},
	}
}

func TestRepository_ApplyVariants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Variants")
	asset := &models.Asset{AlbumID: album.ID, Filename: "v.jpg", OriginalName: "v.jpg"}
	require.NoError(t, repo.CreateAsset(asset))

	updated, err := repo.ApplyVariants(asset.ID, fullVariants())
	assert.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 4000, *updated.Width)
	assert.Equal(t, "a/480.jpg", *updated.Jpg480)
	assert.Equal(t, "a/1920.webp", *updated.Webp1920)
	assert.Equal(t, "a/480.avif", *updated.Avif480)
	assert.Nil(t, updated.Avif960)
}

func TestRepository_ApplyVariants_FullOverwrite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Variants")
	asset := &models.Asset{AlbumID: album.ID, Filename: "v.jpg", OriginalName: "v.jpg"}
	require.NoError(t, repo.CreateAsset(asset))

	_, err := repo.ApplyVariants(asset.ID, fullVariants())
	require.NoError(t, err)

	// 再次应用只含部分规格的集合，未提及的字段必须清空
	partial := models.VariantSet{
		JPG: models.VariantPaths{W960: strPtr("b/960.jpg")},
	}
	updated, err := repo.ApplyVariants(asset.ID, partial)
	assert.NoError(t, err)
	assert.Equal(t, "b/960.jpg", *updated.Jpg960)
	assert.Nil(t, updated.Jpg480)
	assert.Nil(t, updated.Webp1920)
	assert.Nil(t, updated.Avif480)
	assert.Nil(t, updated.Width)
	assert.Nil(t, updated.Height)

	// 持久化后读取同样为空
	var stored models.Asset
	require.NoError(t, db.First(&stored, asset.ID).Error)
	assert.Nil(t, stored.Jpg480)
	assert.Equal(t, "b/960.jpg", *stored.Jpg960)
}

func TestRepository_ApplyVariants_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Variants")
	asset := &models.Asset{AlbumID: album.ID, Filename: "v.jpg", OriginalName: "v.jpg"}
	require.NoError(t, repo.CreateAsset(asset))

	first, err := repo.ApplyVariants(asset.ID, fullVariants())
	require.NoError(t, err)
	second, err := repo.ApplyVariants(asset.ID, fullVariants())
	require.NoError(t, err)

	assert.Equal(t, first.Jpg480, second.Jpg480)
	assert.Equal(t, first.Webp1920, second.Webp1920)
	assert.Equal(t, first.Width, second.Width)
}

func TestRepository_ApplyVariants_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ApplyVariants(999, fullVariants())
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

// --- 测试 SetSortOrder ---

func TestRepository_SetSortOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Sorting")
	ids := make([]uint, 0, 3)
	for i := 0; i < 3; i++ {
		asset := &models.Asset{
			AlbumID:      album.ID,
			Filename:     fmt.Sprintf("s%d.jpg", i),
			OriginalName: fmt.Sprintf("s%d.jpg", i),
		}
		require.NoError(t, db.Create(asset).Error)
		ids = append(ids, asset.ID)
	}

	// 倒序重排
	err := repo.SetSortOrder(album.ID, []uint{ids[2], ids[0], ids[1]})
	assert.NoError(t, err)

	listed, err := repo.ListByAlbum(album.ID, true)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[0], listed[1].ID)
	assert.Equal(t, ids[1], listed[2].ID)
}

func TestRepository_SetSortOrder_CountMismatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Sorting")
	asset := &models.Asset{AlbumID: album.ID, Filename: "s.jpg", OriginalName: "s.jpg"}
	require.NoError(t, db.Create(asset).Error)

	err := repo.SetSortOrder(album.ID, []uint{asset.ID, 999})
	assert.ErrorIs(t, err, ErrAssetNotInAlbum)
}

// --- 测试 SetHidden ---

func TestRepository_SetHidden(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Hiding")
	asset := &models.Asset{AlbumID: album.ID, Filename: "h.jpg", OriginalName: "h.jpg"}
	require.NoError(t, db.Create(asset).Error)

	assert.NoError(t, repo.SetHidden(asset.ID, true))

	var stored models.Asset
	require.NoError(t, db.First(&stored, asset.ID).Error)
	assert.True(t, stored.IsHidden)

	assert.ErrorIs(t, repo.SetHidden(999, true), ErrAssetNotFound)
}

// --- 测试 DeleteAsset ---

func TestRepository_DeleteAsset_ClearsAlbumCover(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	album := createTestAlbum(t, db, "Cover")
	asset := &models.Asset{AlbumID: album.ID, Filename: "c.jpg", OriginalName: "c.jpg"}
	require.NoError(t, db.Create(asset).Error)
	require.NoError(t, db.Model(album).Update("cover_asset_id", asset.ID).Error)

	err := repo.DeleteAsset(asset.ID)
	assert.NoError(t, err)

	// 封面引用置空，相册本身保留
	var stored models.Album
	require.NoError(t, db.First(&stored, album.ID).Error)
	assert.Nil(t, stored.CoverAssetID)

	var count int64
	db.Model(&models.Asset{}).Where("id = ?", asset.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRepository_DeleteAsset_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.DeleteAsset(999)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
