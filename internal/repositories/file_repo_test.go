package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/3Eeeecho/go-mediavault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFile(id string, status models.FileStatus) *models.File {
	return &models.File{
		ID:            id,
		ProjectID:     "p1",
		Name:          id + ".mp4",
		OriginalName:  id + ".mp4",
		MimeType:      "video/mp4",
		FileSizeBytes: 10,
		Status:        status,
	}
}

func TestFileRepositoryCreateAndFind(t *testing.T) {
	repo := NewFileRepository(testutil.OpenDB(t))
	ctx := context.Background()

	file := newFile("f1", models.StatusUploading)
	file.TechnicalMetadata = models.TechnicalMetadata{"width": float64(1920)}
	require.NoError(t, repo.Create(ctx, file))

	got, err := repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploading, got.Status)
	assert.Equal(t, float64(1920), got.TechnicalMetadata["width"])
	assert.Nil(t, got.DeletedAt)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, xerr.ErrNotFound)
}

func TestFileRepositoryUpdateStatusIsCompareAndSet(t *testing.T) {
	repo := NewFileRepository(testutil.OpenDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newFile("f1", models.StatusUploading)))

	require.NoError(t, repo.UpdateStatus(ctx, "f1", models.StatusUploading, models.StatusProcessing))

	// 第二个写入者看到的仍是旧状态
	err := repo.UpdateStatus(ctx, "f1", models.StatusUploading, models.StatusProcessing)
	assert.ErrorIs(t, err, xerr.ErrStatusConflict)

	require.NoError(t, repo.UpdateStatusWith(ctx, "f1", models.StatusProcessing, models.StatusReady,
		map[string]any{"technical_metadata": models.TechnicalMetadata{"duration": 12.5}}))
	got, err := repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, got.Status)
	assert.Equal(t, 12.5, got.TechnicalMetadata["duration"])
}

func TestFileRepositoryColumnUpdates(t *testing.T) {
	repo := NewFileRepository(testutil.OpenDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newFile("f1", models.StatusReady)))

	now := time.Now().UTC()
	folder := "folder-1"
	key := "accounts/a/projects/p1/assets/f1/custom-thumbnail/c.png"
	require.NoError(t, repo.SetDeletedAt(ctx, "f1", &now))
	require.NoError(t, repo.UpdateFolder(ctx, "f1", &folder))
	require.NoError(t, repo.SetCustomThumbnailKey(ctx, "f1", &key))

	got, err := repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)
	assert.WithinDuration(t, now, *got.DeletedAt, time.Second)
	assert.Equal(t, &folder, got.FolderID)
	assert.Equal(t, &key, got.CustomThumbnailKey)
	assert.Equal(t, models.StatusReady, got.Status, "trash axis does not touch status")

	require.NoError(t, repo.SetDeletedAt(ctx, "f1", nil))
	require.NoError(t, repo.UpdateFolder(ctx, "f1", nil))
	got, err = repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	assert.Nil(t, got.DeletedAt)
	assert.Nil(t, got.FolderID)
}

func TestFindTrashedBefore(t *testing.T) {
	repo := NewFileRepository(testutil.OpenDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	old := now.Add(-40 * 24 * time.Hour)
	recent := now.Add(-time.Hour)
	for id, deletedAt := range map[string]*time.Time{"old": &old, "recent": &recent, "live": nil} {
		f := newFile(id, models.StatusReady)
		f.DeletedAt = deletedAt
		require.NoError(t, repo.Create(ctx, f))
	}
	purged := newFile("purged", models.StatusDeleted)
	purged.DeletedAt = &old
	require.NoError(t, repo.Create(ctx, purged))

	files, err := repo.FindTrashedBefore(ctx, now.Add(-30*24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "old", files[0].ID)
}

func TestProjectRepository(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, "acc", "p1", "u1", 100)
	require.NoError(t, db.Create(&models.Folder{ID: "fo1", ProjectID: "p1", Name: "raw"}).Error)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "acc", project.AccountID)

	ok, err := repo.IsMember(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsMember(ctx, "p1", "stranger")
	require.NoError(t, err)
	assert.False(t, ok)

	folder, err := repo.FindFolder(ctx, "fo1")
	require.NoError(t, err)
	assert.Equal(t, "p1", folder.ProjectID)
	_, err = repo.FindFolder(ctx, "nope")
	assert.ErrorIs(t, err, xerr.ErrNotFound)
}
